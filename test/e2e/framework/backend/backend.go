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

// Package backend abstracts where the cluster under test comes from. The
// default backend points at an existing cluster through a kubeconfig file,
// the kind backend provisions a throwaway cluster for the run.
package backend

import (
	"fmt"

	"k8s.io/client-go/rest"

	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
)

type Backend interface {
	Name() string

	// Setup makes the cluster available. For an existing cluster this is
	// only loading the kubeconfig, for kind it creates the cluster.
	Setup() error

	// RestConfig returns the client configuration of the cluster. Only
	// valid after Setup succeeded.
	RestConfig() (*rest.Config, error)

	// LoadImage makes a locally built image visible to the cluster nodes.
	LoadImage(image string) error

	// TearDown releases whatever Setup acquired.
	TearDown() error
}

// FromEnv selects the backend named by the test environment.
func FromEnv() (Backend, error) {
	name := configmanager.SparkEnvConfig.Backend
	switch name {
	case "", "kubeconfig":
		return &KubeConfigBackend{}, nil
	case "kind":
		return NewKindBackend(), nil
	default:
		return nil, fmt.Errorf("unknown test backend %q", name)
	}
}
