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

package backend

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/kind/pkg/cluster"
	"sigs.k8s.io/kind/pkg/cmd"

	"github.com/apache/spark-k8s-integration-tests/pkg/log"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/common"
)

// Single control plane is enough, executor counts in the suite stay small.
const kindConfig = `kind: Cluster
apiVersion: kind.x-k8s.io/v1alpha4
nodes:
- role: control-plane
- role: worker
`

// KindBackend provisions a disposable cluster with kind for the run.
type KindBackend struct {
	provider       *cluster.Provider
	restConfig     *rest.Config
	clusterCreated bool
}

func NewKindBackend() *KindBackend {
	return &KindBackend{
		provider: cluster.NewProvider(
			cluster.ProviderWithLogger(cmd.NewLogger()),
		),
	}
}

func (b *KindBackend) Name() string {
	return "kind"
}

func (b *KindBackend) Setup() error {
	clusterName := configmanager.SparkEnvConfig.KindClusterName

	clusters, err := b.provider.List()
	if err != nil {
		return fmt.Errorf("failed to list kind clusters: %w", err)
	}
	clusterExists := false
	for _, c := range clusters {
		if c == clusterName {
			clusterExists = true
			break
		}
	}

	if clusterExists && configmanager.SparkEnvConfig.ReuseCluster {
		log.Log(log.Backend).Info("reusing existing kind cluster",
			zap.String("name", clusterName))
	} else {
		if clusterExists {
			if err = b.provider.Delete(clusterName, ""); err != nil {
				return fmt.Errorf("failed to delete existing kind cluster: %w", err)
			}
		}

		configFile, err := os.CreateTemp("", "kind-config-*.yaml")
		if err != nil {
			return err
		}
		defer os.Remove(configFile.Name())
		if _, err = configFile.WriteString(kindConfig); err != nil {
			return err
		}
		configFile.Close()

		log.Log(log.Backend).Info("creating kind cluster",
			zap.String("name", clusterName),
			zap.String("nodeImage", configmanager.SparkEnvConfig.KindNodeImage))
		if err = b.provider.Create(
			clusterName,
			cluster.CreateWithConfigFile(configFile.Name()),
			cluster.CreateWithNodeImage(configmanager.SparkEnvConfig.KindNodeImage),
			cluster.CreateWithWaitForReady(5*time.Minute),
		); err != nil {
			return fmt.Errorf("failed to create kind cluster: %w", err)
		}
		b.clusterCreated = true
	}

	kubeconfig, err := b.provider.KubeConfig(clusterName, false)
	if err != nil {
		return fmt.Errorf("failed to get kind kubeconfig: %w", err)
	}
	restCfg, err := clientcmd.RESTConfigFromKubeConfig([]byte(kubeconfig))
	if err != nil {
		return err
	}
	b.restConfig = restCfg
	return nil
}

func (b *KindBackend) RestConfig() (*rest.Config, error) {
	if b.restConfig == nil {
		return nil, errors.New("backend has not been set up")
	}
	return b.restConfig, nil
}

// LoadImage side-loads the Spark image so the nodes do not have to pull it
// from a registry.
func (b *KindBackend) LoadImage(image string) error {
	clusterName := configmanager.SparkEnvConfig.KindClusterName
	nodes, err := b.provider.ListNodes(clusterName)
	if err != nil {
		return fmt.Errorf("failed to list kind nodes: %w", err)
	}
	if len(nodes) == 0 {
		return errors.New("no nodes found in kind cluster")
	}

	out, err := common.RunShellCmdForeground(
		fmt.Sprintf("kind load docker-image %s --name %s", image, clusterName))
	if err != nil {
		return fmt.Errorf("failed to load image %s: %s: %w", image, out, err)
	}
	return nil
}

func (b *KindBackend) TearDown() error {
	if b.clusterCreated && !configmanager.SparkEnvConfig.ReuseCluster {
		return b.provider.Delete(configmanager.SparkEnvConfig.KindClusterName, "")
	}
	return nil
}
