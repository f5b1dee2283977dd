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

package log

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerHandle identifies a named logger scope within the test harness.
type LoggerHandle struct {
	id   int
	name string
}

func (h LoggerHandle) String() string {
	return h.name
}

var (
	Test     = LoggerHandle{id: 0, name: "test"}
	K8s      = LoggerHandle{id: 1, name: "k8s"}
	Launcher = LoggerHandle{id: 2, name: "launcher"}
	Backend  = LoggerHandle{id: 3, name: "backend"}
	Metrics  = LoggerHandle{id: 4, name: "metrics"}
)

var handles = []LoggerHandle{Test, K8s, Launcher, Backend, Metrics}

var (
	once    sync.Once
	root    *zap.Logger
	loggers []*zap.Logger
)

// InitializeLogger configures the root logger. Only the first call takes
// effect; later calls are ignored.
func InitializeLogger(level string, jsonEncoding bool) {
	once.Do(func() {
		encoding := "console"
		if jsonEncoding {
			encoding = "json"
		}
		zapConfig := zap.Config{
			Level:             zap.NewAtomicLevelAt(parseLevel(level)),
			Development:       false,
			DisableCaller:     true,
			DisableStacktrace: true,
			Encoding:          encoding,
			EncoderConfig: zapcore.EncoderConfig{
				MessageKey:     "message",
				LevelKey:       "level",
				TimeKey:        "time",
				NameKey:        "name",
				CallerKey:      "caller",
				StacktraceKey:  "stacktrace",
				EncodeLevel:    zapcore.CapitalLevelEncoder,
				EncodeTime:     zapcore.ISO8601TimeEncoder,
				EncodeDuration: zapcore.StringDurationEncoder,
				EncodeCaller:   zapcore.ShortCallerEncoder,
			},
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}

		logger, err := zapConfig.Build()
		if err != nil {
			panic(fmt.Sprintf("failed to init logger: %s", err.Error()))
		}
		root = logger
		zap.ReplaceGlobals(root)

		loggers = make([]*zap.Logger, len(handles))
		for i, handle := range handles {
			loggers[i] = root.Named(handle.name)
		}
	})
}

// Log returns the named logger for the given handle, initializing the
// logging subsystem with defaults if nothing configured it yet.
func Log(handle LoggerHandle) *zap.Logger {
	if loggers == nil {
		InitializeLogger("info", false)
	}
	return loggers[handle.id]
}

// RootLogger returns the unnamed root logger.
func RootLogger() *zap.Logger {
	if root == nil {
		InitializeLogger("info", false)
	}
	return root
}

func parseLevel(level string) zapcore.Level {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
