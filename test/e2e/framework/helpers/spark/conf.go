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
	"fmt"
	"sort"
	"strconv"

	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
)

// AppConf holds the spark.* properties of one submission.
type AppConf map[string]string

// DefaultAppConf seeds the properties every test submission needs. The
// locator label goes on both driver and executor pods so the suite can find
// them even though the driver pod name is fixed per run as well.
func DefaultAppConf(namespace, appName, appLocator string) AppConf {
	c := AppConf{
		configmanager.SparkConfAppName:           appName,
		configmanager.SparkConfNamespace:         namespace,
		configmanager.SparkConfDriverPodName:     appName + "-driver",
		configmanager.SparkConfContainerImage:    configmanager.SparkEnvConfig.SparkImage(),
		configmanager.SparkConfServiceAccount:    configmanager.SparkEnvConfig.ServiceAccount,
		configmanager.SparkConfExecutorInstances: strconv.Itoa(configmanager.SparkEnvConfig.ExecutorCount),
	}
	c.WithDriverLabel(configmanager.SparkAppLocatorLabel, appLocator)
	c.WithExecutorLabel(configmanager.SparkAppLocatorLabel, appLocator)
	return c
}

func (c AppConf) Set(key, value string) AppConf {
	c[key] = value
	return c
}

func (c AppConf) Clone() AppConf {
	clone := make(AppConf, len(c))
	for k, v := range c {
		clone[k] = v
	}
	return clone
}

func (c AppConf) WithDriverLabel(key, value string) AppConf {
	return c.Set(fmt.Sprintf(configmanager.SparkConfDriverLabelFmt, key), value)
}

func (c AppConf) WithExecutorLabel(key, value string) AppConf {
	return c.Set(fmt.Sprintf(configmanager.SparkConfExecutorLabelFmt, key), value)
}

func (c AppConf) WithDriverAnnotation(key, value string) AppConf {
	return c.Set(fmt.Sprintf(configmanager.SparkConfDriverAnnFmt, key), value)
}

func (c AppConf) WithExecutorAnnotation(key, value string) AppConf {
	return c.Set(fmt.Sprintf(configmanager.SparkConfExecutorAnnFmt, key), value)
}

func (c AppConf) WithDriverEnv(name, value string) AppConf {
	return c.Set(fmt.Sprintf(configmanager.SparkConfDriverEnvFmt, name), value)
}

func (c AppConf) WithExecutorEnv(name, value string) AppConf {
	return c.Set(fmt.Sprintf(configmanager.SparkConfExecutorEnvFmt, name), value)
}

func (c AppConf) WithDriverPodTemplate(path string) AppConf {
	return c.Set(configmanager.SparkConfDriverTemplate, path)
}

func (c AppConf) WithExecutorPodTemplate(path string) AppConf {
	return c.Set(configmanager.SparkConfExecutorTemplate, path)
}

// AppArguments describes what to run: the primary resource, an optional
// main class for JVM apps, files to ship alongside and the arguments passed
// through to the application.
type AppArguments struct {
	Resource  string
	MainClass string
	Files     []string
	AppArgs   []string
}

// SparkPiArgs returns the canonical smoke test application. The examples
// jar ships inside the container image, so the primary resource is local to
// the driver.
func SparkPiArgs(examplesJar string) AppArguments {
	return AppArguments{
		Resource:  examplesJar,
		MainClass: configmanager.SparkPiMainClass,
	}
}

// BuildSubmitArgs renders the argument vector for spark-submit. The master
// URL is the API server of the cluster under test. Conf entries are emitted
// in sorted order so invocations are reproducible in the logs.
func BuildSubmitArgs(master string, app AppArguments, conf AppConf) []string {
	args := []string{
		"--deploy-mode", "cluster",
		"--master", "k8s://" + master,
	}
	if app.MainClass != "" {
		args = append(args, "--class", app.MainClass)
	}

	keys := make([]string, 0, len(conf))
	for k := range conf {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--conf", fmt.Sprintf("%s=%s", k, conf[k]))
	}

	for _, f := range app.Files {
		args = append(args, "--files", f)
	}

	resource := app.Resource
	if resource == "" {
		resource = configmanager.NoResource
	}
	args = append(args, resource)
	args = append(args, app.AppArgs...)
	return args
}
