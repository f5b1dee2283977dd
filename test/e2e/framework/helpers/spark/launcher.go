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

package spark

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"go.uber.org/zap"

	"github.com/apache/spark-k8s-integration-tests/pkg/log"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/metrics"
)

// Launcher invokes the spark-submit script of the distribution under test
// against one cluster.
type Launcher struct {
	master     string
	submitPath string
}

func NewLauncher(master string) *Launcher {
	return &Launcher{
		master:     master,
		submitPath: configmanager.SparkEnvConfig.SparkSubmit(),
	}
}

// Submit runs spark-submit in cluster deploy mode and waits for the process
// to exit. In cluster mode the process returns once the driver pod has been
// created, not when the application finishes, so callers still have to wait
// for completion themselves.
func (l *Launcher) Submit(ctx context.Context, app AppArguments, conf AppConf) error {
	args := BuildSubmitArgs(l.master, app, conf)

	ctx, cancel := context.WithTimeout(ctx, configmanager.SubmitTimeout)
	defer cancel()

	log.Log(log.Launcher).Info("submitting application",
		zap.String("sparkSubmit", l.submitPath),
		zap.Strings("args", args))
	fmt.Fprintf(ginkgo.GinkgoWriter, "Running: %s %s\n", l.submitPath, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, l.submitPath, args...)
	cmd.Stdout = ginkgo.GinkgoWriter
	cmd.Stderr = ginkgo.GinkgoWriter

	start := time.Now()
	err := cmd.Run()
	metrics.ObserveSubmission(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("spark-submit failed: %w", err)
	}
	return nil
}
