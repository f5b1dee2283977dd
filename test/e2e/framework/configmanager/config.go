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

package configmanager

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"reflect"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// SparkTestConfigType holds all of the configurable elements of the testsuite
// that are supplied on the ginkgo command line.
type SparkTestConfigType struct {
	JSONLogs   bool
	LogLevel   string
	Timeout    time.Duration
	KubeConfig string
	LogDir     string
}

// SparkEnvConfigType holds the Spark-specific settings of the testsuite,
// populated from SPARK_K8S_TEST_* environment variables.
type SparkEnvConfigType struct {
	// DistroDir is the root of an unpacked Spark distribution. Required:
	// spark-submit is resolved relative to it.
	DistroDir string `envconfig:"DISTRO_DIR"`
	// ImageRepo is the registry/repository prefix of the Spark images.
	ImageRepo string `envconfig:"IMAGE_REPO" default:"docker.io/kubespark"`
	// ImageTag is the tag shared by the JVM and Python Spark images.
	ImageTag string `envconfig:"IMAGE_TAG" default:"latest"`
	// Image overrides the derived JVM image reference when non-empty.
	Image string `envconfig:"IMAGE"`
	// PythonImage overrides the derived Python image reference when non-empty.
	PythonImage string `envconfig:"PYTHON_IMAGE"`
	// ServiceAccount used by the driver pod.
	ServiceAccount string `envconfig:"SERVICE_ACCOUNT" default:"default"`
	// Backend selects the cluster test backend ("kubeconfig" or "kind").
	Backend string `envconfig:"BACKEND" default:"kubeconfig"`
	// KindClusterName names the throwaway cluster of the kind backend.
	KindClusterName string `envconfig:"KIND_CLUSTER_NAME" default:"spark-integration"`
	// KindNodeImage is the node image of the kind backend.
	KindNodeImage string `envconfig:"KIND_NODE_IMAGE" default:"kindest/node:v1.29.2"`
	// ReuseCluster keeps the kind cluster alive across suite runs.
	ReuseCluster bool `envconfig:"REUSE_CLUSTER" default:"false"`
	// ExecutorCount is the number of executors requested per application.
	ExecutorCount int `envconfig:"EXECUTOR_COUNT" default:"1"`
	// ExamplesJar is the primary resource of the example applications,
	// local to the container image.
	ExamplesJar string `envconfig:"EXAMPLES_JAR" default:"local:///opt/spark/examples/jars/spark-examples.jar"`
}

// SparkTestConfig holds the global flag configuration of the ginkgo-based
// testing environment.
var SparkTestConfig = SparkTestConfigType{}

// SparkEnvConfig holds the global Spark settings parsed from the environment.
var SparkEnvConfig = SparkEnvConfigType{}

// ParseFlags parses commandline flags relevant to testing.
func (c *SparkTestConfigType) ParseFlags() {
	flag.BoolVar(&c.JSONLogs, "json-logs-enabled", false,
		"Enables logging in json format")
	flag.StringVar(&c.LogLevel, "log-level", "debug",
		"log level(debug|info|error)")
	flag.StringVar(&c.KubeConfig, "kube-config", "~/.kube/config",
		"Kubeconfig to be used for tests")
	flag.DurationVar(&c.Timeout, "timeout", 24*time.Hour,
		"Specifies timeout for test run")
	flag.StringVar(&c.LogDir, "log-dir", "/tmp/test-results/target/failsafe-reports",
		"Log location where the logs are stored")
}

// ParseEnv populates SparkEnvConfig from SPARK_K8S_TEST_* variables.
// A variable literally set to "null" is cleared before use. CI systems that
// template their environment sometimes emit the string "null" for absent
// values.
func ParseEnv() error {
	cfg := SparkEnvConfigType{}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return err
	}
	clearNullStrings(&cfg)
	if cfg.DistroDir == "" {
		return errors.New("SPARK_K8S_TEST_DISTRO_DIR must point to an unpacked Spark distribution")
	}
	SparkEnvConfig = cfg
	return nil
}

// clearNullStrings resets every string field holding the literal "null".
func clearNullStrings(cfg *SparkEnvConfigType) {
	v := reflect.ValueOf(cfg).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.String && field.String() == NullValue {
			field.SetString("")
		}
	}
}

// SparkImage returns the JVM Spark image reference.
func (c *SparkEnvConfigType) SparkImage() string {
	if c.Image != "" {
		return c.Image
	}
	return fmt.Sprintf("%s/spark:%s", c.ImageRepo, c.ImageTag)
}

// SparkPythonImage returns the Python Spark image reference.
func (c *SparkEnvConfigType) SparkPythonImage() string {
	if c.PythonImage != "" {
		return c.PythonImage
	}
	return fmt.Sprintf("%s/spark-py:%s", c.ImageRepo, c.ImageTag)
}

// SparkSubmit returns the path of the spark-submit script inside the
// unpacked distribution.
func (c *SparkEnvConfigType) SparkSubmit() string {
	return filepath.Join(c.DistroDir, "bin", "spark-submit")
}
