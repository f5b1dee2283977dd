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
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
	v1 "k8s.io/api/core/v1"

	"github.com/apache/spark-k8s-integration-tests/pkg/locking"
	"github.com/apache/spark-k8s-integration-tests/pkg/log"
)

// ----------------------------------------------
// Application run events
// ----------------------------------------------
type runEvent int

const (
	SubmitRun runEvent = iota
	DriverCreated
	RunApplication
	CompleteRun
	FailRun
)

func (re runEvent) String() string {
	return [...]string{"SubmitRun", "DriverCreated", "RunApplication", "CompleteRun", "FailRun"}[re]
}

// ----------------------------------
// Application run states
// ----------------------------------
type runState int

const (
	New runState = iota
	Submitted
	DriverPending
	Running
	Completed
	Failed
)

func (rs runState) String() string {
	return [...]string{"New", "Submitted", "DriverPending", "Running", "Completed", "Failed"}[rs]
}

func newRunState() *fsm.FSM {
	return fsm.NewFSM(
		New.String(), fsm.Events{
			{
				Name: SubmitRun.String(),
				Src:  []string{New.String()},
				Dst:  Submitted.String(),
			},
			{
				Name: DriverCreated.String(),
				Src:  []string{Submitted.String(), DriverPending.String()},
				Dst:  DriverPending.String(),
			},
			{
				Name: RunApplication.String(),
				Src:  []string{Submitted.String(), DriverPending.String(), Running.String()},
				Dst:  Running.String(),
			},
			{
				Name: CompleteRun.String(),
				Src:  []string{Running.String()},
				Dst:  Completed.String(),
			},
			{
				Name: FailRun.String(),
				Src:  []string{Submitted.String(), DriverPending.String(), Running.String()},
				Dst:  Failed.String(),
			},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, event *fsm.Event) {
				run := event.Args[0].(*Run) //nolint:errcheck
				log.Log(log.Test).Debug("application run state transition",
					zap.String("appName", run.appName),
					zap.String("source", event.Src),
					zap.String("destination", event.Dst),
					zap.String("event", event.Event))
			},
		},
	)
}

// Run tracks one submitted application through the phases its driver pod
// goes through. The suite feeds pod phases in, the state machine rejects
// impossible sequences such as a completion without a driver.
type Run struct {
	appName string
	locator string
	sm      *fsm.FSM

	locking.RWMutex
}

func NewRun(appName, locator string) *Run {
	return &Run{
		appName: appName,
		locator: locator,
		sm:      newRunState(),
	}
}

func (r *Run) AppName() string {
	r.RLock()
	defer r.RUnlock()
	return r.appName
}

func (r *Run) Locator() string {
	r.RLock()
	defer r.RUnlock()
	return r.locator
}

func (r *Run) State() string {
	r.RLock()
	defer r.RUnlock()
	return r.sm.Current()
}

func (r *Run) handle(ev runEvent) error {
	r.Lock()
	defer r.Unlock()
	err := r.sm.Event(context.Background(), ev.String(), r)
	if err != nil {
		noTransition := fsm.NoTransitionError{}
		if errors.As(err, &noTransition) {
			return nil
		}
	}
	return err
}

// MarkSubmitted records that spark-submit returned successfully.
func (r *Run) MarkSubmitted() error {
	return r.handle(SubmitRun)
}

// ObserveDriverPhase advances the run from a driver pod phase.
func (r *Run) ObserveDriverPhase(phase v1.PodPhase) error {
	switch phase {
	case v1.PodPending:
		return r.handle(DriverCreated)
	case v1.PodRunning:
		return r.handle(RunApplication)
	case v1.PodSucceeded:
		if r.State() != Running.String() {
			// a fast application can finish between two polls
			if err := r.handle(RunApplication); err != nil {
				return err
			}
		}
		return r.handle(CompleteRun)
	case v1.PodFailed:
		return r.handle(FailRun)
	case v1.PodUnknown:
		return fmt.Errorf("driver pod of %s is in unknown phase", r.AppName())
	}
	return nil
}

func (r *Run) Finished() bool {
	state := r.State()
	return state == Completed.String() || state == Failed.String()
}

func (r *Run) Succeeded() bool {
	return r.State() == Completed.String()
}
