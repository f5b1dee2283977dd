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

	"k8s.io/client-go/rest"

	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/helpers/k8s"
)

// KubeConfigBackend targets a cluster that already exists. Images are
// assumed to be pullable by the cluster, LoadImage is a no-op.
type KubeConfigBackend struct {
	restConfig *rest.Config
}

func (b *KubeConfigBackend) Name() string {
	return "kubeconfig"
}

func (b *KubeConfigBackend) Setup() error {
	kClient := k8s.KubeCtl{}
	if err := kClient.SetClient(); err != nil {
		return err
	}
	cfg, err := kClient.GetKubeConfig()
	if err != nil {
		return err
	}
	b.restConfig = cfg
	return nil
}

func (b *KubeConfigBackend) RestConfig() (*rest.Config, error) {
	if b.restConfig == nil {
		return nil, errors.New("backend has not been set up")
	}
	return b.restConfig, nil
}

func (b *KubeConfigBackend) LoadImage(image string) error {
	return nil
}

func (b *KubeConfigBackend) TearDown() error {
	return nil
}
