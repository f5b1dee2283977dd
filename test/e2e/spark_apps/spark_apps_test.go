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

package sparkapps_test

import (
	"context"
	"fmt"
	"strconv"
	"time"

	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/wait"

	tests "github.com/apache/spark-k8s-integration-tests/test/e2e"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/common"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/k8s"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/metrics"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/spark"
)

// podChecker asserts properties of a single driver or executor pod.
type podChecker func(pod *v1.Pod)

func allChecks(checkers ...podChecker) podChecker {
	return func(pod *v1.Pod) {
		for _, check := range checkers {
			check(pod)
		}
	}
}

func driverPodCheck(image string) podChecker {
	return func(pod *v1.Pod) {
		Ω(pod.Spec.Containers[0].Name).To(Equal(configmanager.DriverContainerName))
		Ω(pod.Spec.Containers[0].Image).To(Equal(image))
	}
}

func executorPodCheck(image string) podChecker {
	return func(pod *v1.Pod) {
		Ω(pod.Spec.Containers[0].Name).To(Equal(configmanager.ExecutorContainerName))
		Ω(pod.Spec.Containers[0].Image).To(Equal(image))
	}
}

func templatedPodCheck(containerName, image string) podChecker {
	return func(pod *v1.Pod) {
		Ω(pod.Spec.Containers[0].Name).To(Equal(containerName))
		Ω(pod.Spec.Containers[0].Image).To(Equal(image))
	}
}

func serviceAccountCheck(serviceAccount string) podChecker {
	return func(pod *v1.Pod) {
		Ω(pod.Spec.ServiceAccountName).To(Equal(serviceAccount))
	}
}

func customMetadataCheck(labels, annotations map[string]string) podChecker {
	return func(pod *v1.Pod) {
		for key, value := range labels {
			Ω(pod.Labels).To(HaveKeyWithValue(key, value))
		}
		for key, value := range annotations {
			Ω(pod.Annotations).To(HaveKeyWithValue(key, value))
		}
	}
}

func envVarCheck(name, value string) podChecker {
	return func(pod *v1.Pod) {
		for _, env := range pod.Spec.Containers[0].Env {
			if env.Name == name {
				Ω(env.Value).To(Equal(value))
				return
			}
		}
		Fail(fmt.Sprintf("env var %s not found on pod %s", name, pod.Name))
	}
}

var _ = Describe("SparkApps", func() {

	var sparkNS string
	var svcAcc string
	var roleName string
	var appName string
	var appLocator string
	const clusterEditRole = "edit"

	baseConf := func() spark.AppConf {
		return spark.DefaultAppConf(sparkNS, appName, appLocator).
			Set(configmanager.SparkConfServiceAccount, svcAcc)
	}

	BeforeEach(func() {
		sparkNS = "spark-" + common.RandSeq(10)
		svcAcc = "spark-sa-" + common.RandSeq(5)
		roleName = "spark-role-" + common.RandSeq(5)
		appName = "spark-test-app-" + common.RandSeq(4)
		appLocator = common.GetUUID()

		By(fmt.Sprintf("Creating namespace: %s for spark apps", sparkNS))
		ns, err := kClient.CreateNamespace(sparkNS, nil)
		Ω(err).NotTo(HaveOccurred())
		Ω(ns.Status.Phase).To(Equal(v1.NamespaceActive))

		By(fmt.Sprintf("Creating service account: %s under namespace: %s", svcAcc, sparkNS))
		_, err = kClient.CreateServiceAccount(svcAcc, sparkNS)
		Ω(err).NotTo(HaveOccurred())

		By(fmt.Sprintf("Creating cluster role binding: %s for spark apps", roleName))
		_, err = kClient.CreateClusterRoleBinding(roleName, clusterEditRole, sparkNS, svcAcc)
		Ω(err).NotTo(HaveOccurred())
	})

	It("Verify_basic_sparkpi_completes", func() {
		runAppAndVerifyCompletion(
			sparkNS, appName, appLocator,
			spark.SparkPiArgs(configmanager.SparkEnvConfig.ExamplesJar),
			baseConf(),
			[]string{configmanager.SparkPiLogLine},
			allChecks(
				driverPodCheck(configmanager.SparkEnvConfig.SparkImage()),
				serviceAccountCheck(svcAcc),
				func(pod *v1.Pod) { Ω(pod.Name).To(Equal(appName + "-driver")) }),
			executorPodCheck(configmanager.SparkEnvConfig.SparkImage()))
	})

	It("Verify_custom_labels_and_annotations", func() {
		labels := map[string]string{"label1": "label1-value", "label2": "label2-value"}
		annotations := map[string]string{"annotation1": "annotation1-value", "annotation2": "annotation2-value"}

		conf := baseConf()
		for key, value := range labels {
			conf.WithDriverLabel(key, value)
			conf.WithExecutorLabel(key, value)
		}
		for key, value := range annotations {
			conf.WithDriverAnnotation(key, value)
			conf.WithExecutorAnnotation(key, value)
		}

		runAppAndVerifyCompletion(
			sparkNS, appName, appLocator,
			spark.SparkPiArgs(configmanager.SparkEnvConfig.ExamplesJar),
			conf,
			[]string{configmanager.SparkPiLogLine},
			allChecks(driverPodCheck(configmanager.SparkEnvConfig.SparkImage()), customMetadataCheck(labels, annotations)),
			allChecks(executorPodCheck(configmanager.SparkEnvConfig.SparkImage()), customMetadataCheck(labels, annotations)))
	})

	It("Verify_custom_driver_and_executor_env_vars", func() {
		conf := baseConf().
			WithDriverEnv("ENV1", "VALUE1").
			WithExecutorEnv("ENV2", "VALUE2")

		runAppAndVerifyCompletion(
			sparkNS, appName, appLocator,
			spark.SparkPiArgs(configmanager.SparkEnvConfig.ExamplesJar),
			conf,
			[]string{configmanager.SparkPiLogLine},
			allChecks(driverPodCheck(configmanager.SparkEnvConfig.SparkImage()), envVarCheck("ENV1", "VALUE1")),
			allChecks(executorPodCheck(configmanager.SparkEnvConfig.SparkImage()), envVarCheck("ENV2", "VALUE2")))
	})

	It("Verify_pyspark_app_completes", func() {
		conf := baseConf().
			Set(configmanager.SparkConfContainerImage, configmanager.SparkEnvConfig.SparkPythonImage())

		runAppAndVerifyCompletion(
			sparkNS, appName, appLocator,
			spark.AppArguments{Resource: configmanager.SparkPiPythonFile},
			conf,
			[]string{configmanager.SparkPiLogLine},
			driverPodCheck(configmanager.SparkEnvConfig.SparkPythonImage()),
			executorPodCheck(configmanager.SparkEnvConfig.SparkPythonImage()))
	})

	It("Verify_remote_data_file_is_mounted", func() {
		dataFile, err := common.GetAbsPath("../testdata/pagerank_data.txt")
		Ω(err).NotTo(HaveOccurred())

		app := spark.AppArguments{
			Resource:  configmanager.SparkEnvConfig.ExamplesJar,
			MainClass: configmanager.SparkRemoteFileMainClass,
			Files:     []string{dataFile},
			AppArgs:   []string{"pagerank_data.txt"},
		}

		runAppAndVerifyCompletion(
			sparkNS, appName, appLocator,
			app,
			baseConf(),
			[]string{configmanager.RemoteFileMountLogLine},
			driverPodCheck(configmanager.SparkEnvConfig.SparkImage()),
			nil)
	})

	It("Verify_pods_launched_from_pod_templates", func() {
		driverTemplate, err := common.GetAbsPath("../testdata/driver-pod-template.yml")
		Ω(err).NotTo(HaveOccurred())
		executorTemplate, err := common.GetAbsPath("../testdata/executor-pod-template.yml")
		Ω(err).NotTo(HaveOccurred())

		// the template must be a valid pod manifest before handing it to
		// spark-submit
		templateObj, err := common.GetPodTemplateObj(driverTemplate)
		Ω(err).NotTo(HaveOccurred())
		Ω(templateObj.Labels).To(HaveKeyWithValue("template-label", "driver-template-label-value"))

		conf := baseConf().
			WithDriverPodTemplate(driverTemplate).
			WithExecutorPodTemplate(executorTemplate)

		runAppAndVerifyCompletion(
			sparkNS, appName, appLocator,
			spark.SparkPiArgs(configmanager.SparkEnvConfig.ExamplesJar),
			conf,
			[]string{configmanager.SparkPiLogLine},
			// container names come from the templates, not from the
			// scheduler backend defaults
			allChecks(
				templatedPodCheck("test-driver-container", configmanager.SparkEnvConfig.SparkImage()),
				customMetadataCheck(map[string]string{"template-label": "driver-template-label-value"}, nil)),
			allChecks(
				templatedPodCheck("test-executor-container", configmanager.SparkEnvConfig.SparkImage()),
				customMetadataCheck(map[string]string{"template-label": "executor-template-label-value"}, nil)))
	})

	It("Verify_executor_instance_count", func() {
		executorCount := 3
		conf := baseConf().
			Set(configmanager.SparkConfExecutorInstances, strconv.Itoa(executorCount))

		// a longer run keeps the executors around while they are counted
		app := spark.SparkPiArgs(configmanager.SparkEnvConfig.ExamplesJar)
		app.AppArgs = []string{"5000"}

		By("Submit SparkPi with " + strconv.Itoa(executorCount) + " executors")
		Ω(launcher.Submit(context.TODO(), app, conf)).To(Succeed())

		By("Waiting for the driver pod to run")
		driverSelector := k8s.SparkPodSelector(appLocator, configmanager.DriverRole)
		Ω(kClient.WaitForPodBySelector(sparkNS, driverSelector, configmanager.CompletionTimeout)).To(Succeed())

		By("Waiting for all executors to appear")
		err := wait.PollUntilContextTimeout(context.TODO(), configmanager.CompletionInterval, configmanager.CompletionTimeout, false, func(context.Context) (bool, error) {
			executors, listErr := kClient.GetExecutorPods(sparkNS, appLocator)
			if listErr != nil {
				return false, listErr
			}
			return len(executors.Items) == executorCount, nil
		})
		Ω(err).NotTo(HaveOccurred())
	})

	It("Verify_executors_are_cleaned_up_after_driver_deletion", func() {
		// a long-running application so the driver can be deleted mid-flight
		app := spark.SparkPiArgs(configmanager.SparkEnvConfig.ExamplesJar)
		app.AppArgs = []string{"10000"}

		By("Submit a long-running SparkPi")
		Ω(launcher.Submit(context.TODO(), app, baseConf())).To(Succeed())

		By("Waiting for driver and executors to appear")
		Ω(kClient.WaitForPodBySelector(sparkNS, k8s.SparkPodSelector(appLocator, configmanager.DriverRole), configmanager.CompletionTimeout)).To(Succeed())
		Ω(kClient.WaitForPodBySelector(sparkNS, k8s.SparkPodSelector(appLocator, configmanager.ExecutorRole), configmanager.CompletionTimeout)).To(Succeed())

		driver, err := kClient.GetDriverPod(sparkNS, appLocator)
		Ω(err).NotTo(HaveOccurred())

		By("Deleting the driver pod: " + driver.Name)
		Ω(kClient.DeletePod(driver.Name, sparkNS)).To(Succeed())

		By("Verifying the driver pod stays absent")
		Ω(kClient.WaitForPodAbsent(sparkNS, driver.Name, configmanager.CompletionTimeout)).To(Succeed())
		absent, err := kClient.PodAbsent(sparkNS, driver.Name)
		Ω(err).NotTo(HaveOccurred())
		Ω(absent).To(BeTrue())

		By("Verifying all executors are cleaned up")
		err = wait.PollUntilContextTimeout(context.TODO(), configmanager.CompletionInterval, configmanager.CompletionTimeout, false, func(context.Context) (bool, error) {
			executors, listErr := kClient.GetExecutorPods(sparkNS, appLocator)
			if listErr != nil {
				return false, listErr
			}
			return len(executors.Items) == 0, nil
		})
		Ω(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		tests.DumpClusterInfoIfSpecFailed(kClient, suiteName, []string{sparkNS})
		By("Deleting cluster role binding: " + roleName)
		Ω(kClient.DeleteClusterRoleBindings(roleName)).To(Succeed())
		By("Tearing down namespace: " + sparkNS)
		Ω(kClient.TearDownNamespace(sparkNS)).To(Succeed())
	})
})

// runAppAndVerifyCompletion submits the application and walks it through the
// whole lifecycle: driver appears, pods pass their checks, the driver log
// carries the expected lines and the driver pod reaches Succeeded. A nil
// executorCheck skips the executor assertions for apps that finish too
// quickly to observe them reliably.
func runAppAndVerifyCompletion(namespace, appName, appLocator string, app spark.AppArguments, conf spark.AppConf,
	expectedDriverLogs []string, driverCheck, executorCheck podChecker) {
	run := spark.NewRun(appName, appLocator)
	start := time.Now()

	By("Submit the application: " + appName)
	Ω(launcher.Submit(context.TODO(), app, conf)).To(Succeed())
	Ω(run.MarkSubmitted()).To(Succeed())

	By("Waiting for the driver pod to appear")
	driverSelector := k8s.SparkPodSelector(appLocator, configmanager.DriverRole)
	Ω(kClient.WaitForPodBySelector(namespace, driverSelector, configmanager.CompletionTimeout)).To(Succeed())

	driver, err := kClient.GetDriverPod(namespace, appLocator)
	Ω(err).NotTo(HaveOccurred())
	Ω(run.ObserveDriverPhase(driver.Status.Phase)).To(Succeed())

	By("Waiting for the driver pod to be scheduled")
	Ω(kClient.WaitForPodScheduled(namespace, driver.Name, configmanager.CompletionTimeout)).To(Succeed())

	By("Verifying the driver pod")
	driverCheck(driver)

	if executorCheck != nil {
		By("Waiting for executor pods to appear")
		executorSelector := k8s.SparkPodSelector(appLocator, configmanager.ExecutorRole)
		Ω(kClient.WaitForPodBySelector(namespace, executorSelector, configmanager.CompletionTimeout)).To(Succeed())

		executors, listErr := kClient.GetExecutorPods(namespace, appLocator)
		Ω(listErr).NotTo(HaveOccurred())
		Ω(executors.Items).NotTo(BeEmpty())
		By("Verifying the executor pods")
		for i := range executors.Items {
			executorCheck(&executors.Items[i])
		}
	}

	By("Waiting for the expected driver log lines")
	Ω(kClient.WaitForPodLogContains(namespace, driver.Name, configmanager.DriverContainerName,
		expectedDriverLogs, configmanager.CompletionTimeout)).To(Succeed())

	By("Waiting for the driver pod to succeed")
	Ω(kClient.WaitForPodSucceeded(namespace, driver.Name, configmanager.CompletionTimeout)).To(Succeed())
	driver, err = kClient.GetDriverPod(namespace, appLocator)
	Ω(err).NotTo(HaveOccurred())
	Ω(run.ObserveDriverPhase(driver.Status.Phase)).To(Succeed())
	Ω(run.Succeeded()).To(BeTrue())

	metrics.ObserveAppCompletion(time.Since(start))
}
