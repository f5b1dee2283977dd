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
	"os"
	"time"
)

const (
	TestResultsPath = "test_results/"
	LogPath         = "build/e2e"

	// LogPerm is the permission for files that are created by this framework
	// that contain logs, outputs etc
	LogPerm = os.FileMode(0666)

	ArtifactPathEnv     = "ARTIFACT_PATH"
	DefaultArtifactPath = "/tmp/spark-k8s-e2e"

	// EnvPrefix is the envconfig prefix of all Spark test settings.
	EnvPrefix = "SPARK_K8S_TEST"

	// NullValue marks an environment variable as unset. Properties
	// templated by CI may carry it literally.
	NullValue = "null"

	// Pod labels applied by spark-submit to every pod of a run.
	SparkAppLocatorLabel = "spark-app-locator"
	SparkRoleLabel       = "spark-role"
	SparkAppNameLabel    = "spark-app-name"
	DriverRole           = "driver"
	ExecutorRole         = "executor"

	// Container names assigned by the Spark Kubernetes scheduler backend.
	DriverContainerName   = "spark-kubernetes-driver"
	ExecutorContainerName = "executor"

	// NoResource is the spark-submit sentinel for "no primary resource".
	NoResource = "spark-internal"

	// Well-known example entry points shipped with the distribution.
	SparkPiMainClass         = "org.apache.spark.examples.SparkPi"
	SparkRemoteFileMainClass = "org.apache.spark.examples.SparkRemoteFileTest"

	// SparkPiPythonFile is the PySpark example shipped with the image.
	SparkPiPythonFile = "local:///opt/spark/examples/src/main/python/pi.py"

	// Driver log lines proving an example application really ran.
	SparkPiLogLine         = "Pi is roughly 3"
	RemoteFileMountLogLine = "Mounting of pagerank_data.txt was true"

	// DriverUIPort is the Spark UI port on the driver pod.
	DriverUIPort = 4040

	// Spark configuration keys passed to spark-submit.
	SparkConfNamespace         = "spark.kubernetes.namespace"
	SparkConfContainerImage    = "spark.kubernetes.container.image"
	SparkConfDriverPodName     = "spark.kubernetes.driver.pod.name"
	SparkConfServiceAccount    = "spark.kubernetes.authenticate.driver.serviceAccountName"
	SparkConfExecutorInstances = "spark.executor.instances"
	SparkConfAppName           = "spark.app.name"
	SparkConfDriverLabelFmt    = "spark.kubernetes.driver.label.%s"
	SparkConfExecutorLabelFmt  = "spark.kubernetes.executor.label.%s"
	SparkConfDriverAnnFmt      = "spark.kubernetes.driver.annotation.%s"
	SparkConfExecutorAnnFmt    = "spark.kubernetes.executor.annotation.%s"
	SparkConfDriverEnvFmt      = "spark.kubernetes.driverEnv.%s"
	SparkConfExecutorEnvFmt    = "spark.executorEnv.%s"
	SparkConfDriverTemplate    = "spark.kubernetes.driver.podTemplateFile"
	SparkConfExecutorTemplate  = "spark.kubernetes.executor.podTemplateFile"
)

const (
	// CompletionTimeout bounds the wait for an application to finish;
	// CompletionInterval is the poll period of that wait.
	CompletionTimeout  = 2 * time.Minute
	CompletionInterval = 2 * time.Second

	// SubmitTimeout bounds a single spark-submit invocation.
	SubmitTimeout = 3 * time.Minute
)
