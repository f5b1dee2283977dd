/*
 Licensed to the Apache Software Foundation (ASF) under one
 or more contributor license agreements.  See the NOTICE file
 distributed with this work for additional information
 regarding copyright ownership.  The ASF licenses this file
 to you under the Apache License, Version 2.0 (the
 "License"); you may not use this file except in compliance
 with the License.  You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package locking provides Mutex and RWMutex types with optional runtime
// deadlock detection. Detection is enabled by setting DEADLOCK_DETECTION_ENABLED
// in the environment; with it disabled the types behave like sync.Mutex and
// sync.RWMutex with negligible overhead.
package locking

import (
	"os"
	"strconv"
	"time"

	"github.com/sasha-s/go-deadlock"
)

const (
	envDeadlockDetection = "DEADLOCK_DETECTION_ENABLED"
	envDeadlockTimeout   = "DEADLOCK_TIMEOUT_SECONDS"

	defaultDeadlockTimeout = 60 * time.Second
)

type Mutex = deadlock.Mutex
type RWMutex = deadlock.RWMutex

func init() {
	enabled, err := strconv.ParseBool(os.Getenv(envDeadlockDetection))
	if err != nil {
		enabled = false
	}
	deadlock.Opts.Disable = !enabled
	deadlock.Opts.DeadlockTimeout = defaultDeadlockTimeout
	if secs, convErr := strconv.Atoi(os.Getenv(envDeadlockTimeout)); convErr == nil && secs > 0 {
		deadlock.Opts.DeadlockTimeout = time.Duration(secs) * time.Second
	}
}

// IsDeadlockDetectionEnabled returns true if lock operations are tracked.
func IsDeadlockDetectionEnabled() bool {
	return !deadlock.Opts.Disable
}
