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

package e2e

import (
	"fmt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/common"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/k8s"
)

// DumpClusterInfoIfSpecFailed writes cluster state and the logs of all Spark
// pods to files by log type (k8sClusterInfo, spark pod logs).
// Should be called in ginkgo.AfterEach with the suite's client so the dump
// reads the same cluster the specs ran against.
func DumpClusterInfoIfSpecFailed(k k8s.KubeCtl, suiteName string, namespaces []string) {
	testDescription := ginkgo.CurrentSpecReport()
	if testDescription.Failed() {
		specName := common.GetTestName()
		fmt.Fprintf(ginkgo.GinkgoWriter, "Logging k8s cluster info, spec: %s\n", specName)
		err := dumpKubernetesClusterInfo(k, suiteName, specName, namespaces)
		if err != nil {
			fmt.Fprintf(ginkgo.GinkgoWriter, "Fail to log k8s cluster info, spec: %s, err: %v\n", specName, err)
		}

		fmt.Fprintf(ginkgo.GinkgoWriter, "Logging spark pod logs, spec: %s\n", specName)
		err = dumpSparkPodLogs(k, suiteName, specName, namespaces)
		if err != nil {
			fmt.Fprintf(ginkgo.GinkgoWriter, "Fail to log spark pod logs, spec: %s, err: %v\n", specName, err)
		}
	}
}

func dumpKubernetesClusterInfo(k k8s.KubeCtl, suiteName string, specName string, namespaces []string) error {
	file, err := common.CreateLogFile(suiteName, specName, "k8sClusterInfo", "txt")
	if err != nil {
		return err
	}
	defer file.Close()

	for _, ns := range namespaces {
		err = k.LogNamespaceInfo(file, ns)
		if err != nil {
			fmt.Fprintf(ginkgo.GinkgoWriter, "Failed to log namespace info, ns:%s, err: %v\n", ns, err)
		}
		err = k.LogPodsInfo(file, ns)
		if err != nil {
			fmt.Fprintf(ginkgo.GinkgoWriter, "Failed to log pods info, err: %v\n", err)
		}
	}

	err = k.LogNodesInfo(file)
	if err != nil {
		fmt.Fprintf(ginkgo.GinkgoWriter, "Failed to log nodes info, err: %v\n", err)
	}

	return nil
}

func dumpSparkPodLogs(k k8s.KubeCtl, suiteName string, specName string, namespaces []string) error {
	roles := map[string]string{
		configmanager.DriverRole:   configmanager.DriverContainerName,
		configmanager.ExecutorRole: configmanager.ExecutorContainerName,
	}

	for _, ns := range namespaces {
		for role, container := range roles {
			pods, listErr := k.ListPods(ns, fmt.Sprintf("%s=%s", configmanager.SparkRoleLabel, role))
			if listErr != nil {
				return listErr
			}
			for _, pod := range pods.Items {
				logBytes, getErr := k.GetPodLogs(pod.Name, ns, container)
				if getErr != nil {
					fmt.Fprintf(ginkgo.GinkgoWriter, "Failed to get logs of %s, err: %v\n", pod.Name, getErr)
					continue
				}

				file, fileErr := common.CreateLogFile(suiteName, specName, "spark_"+pod.Name, "txt")
				if fileErr != nil {
					return fileErr
				}
				fmt.Fprintf(file, "Logs of %s:\n%s\n", pod.Name, string(logBytes))
				file.Close()
			}
		}
	}
	return nil
}

var Describe = ginkgo.Describe
var It = ginkgo.It
var By = ginkgo.By
var BeforeSuite = ginkgo.BeforeSuite
var AfterSuite = ginkgo.AfterSuite
var BeforeEach = ginkgo.BeforeEach
var AfterEach = ginkgo.AfterEach

var Equal = gomega.Equal
var Ω = gomega.Expect
var BeNil = gomega.BeNil
var HaveOccurred = gomega.HaveOccurred
var BeEquivalentTo = gomega.BeEquivalentTo
var ContainSubstring = gomega.ContainSubstring
var BeTrue = gomega.BeTrue
var BeEmpty = gomega.BeEmpty
