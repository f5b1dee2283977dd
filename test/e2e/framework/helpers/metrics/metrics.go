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

// Package metrics accumulates counters about the test run itself. The
// numbers end up in an artifact file so CI can spot flaky clusters, for
// example a run where half the submissions failed before any assertion.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
)

const namespace = "spark_k8s_test"

var (
	registry = prometheus.NewRegistry()

	submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Number of spark-submit invocations, by outcome.",
	}, []string{"outcome"})

	submitSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submit_duration_seconds",
		Help:      "Wall clock duration of spark-submit invocations.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	appCompletionSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "app_completion_seconds",
		Help:      "Time from submission until the application finished.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)

func init() {
	registry.MustRegister(submissionsTotal, submitSeconds, appCompletionSeconds)
}

// ObserveSubmission records one spark-submit invocation.
func ObserveSubmission(duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	submissionsTotal.WithLabelValues(outcome).Inc()
	submitSeconds.Observe(duration.Seconds())
}

// ObserveAppCompletion records how long an application took to finish.
func ObserveAppCompletion(duration time.Duration) {
	appCompletionSeconds.Observe(duration.Seconds())
}

// Registry exposes the registry for tests.
func Registry() *prometheus.Registry {
	return registry
}

// Gather returns the current metric families of the harness.
func Gather() ([]*dto.MetricFamily, error) {
	return registry.Gather()
}

// Dump writes the current metric families in the text exposition format to
// the artifact directory. Called once after the suite finished.
func Dump() error {
	artifactPath := os.Getenv(configmanager.ArtifactPathEnv)
	if artifactPath == "" {
		artifactPath = configmanager.DefaultArtifactPath
	}
	if err := os.MkdirAll(artifactPath, 0755); err != nil {
		return err
	}

	families, err := Gather()
	if err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(artifactPath, "harness_metrics.prom"))
	if err != nil {
		return err
	}
	defer file.Close()

	for _, family := range families {
		if _, err = expfmt.MetricFamilyToText(file, family); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", family.GetName(), err)
		}
	}
	return nil
}
