/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package editor

import (
	"sync"
)

// Session holds the current state of one editor and serialises the actions
// dispatched to it.
type Session struct {
	mu      sync.RWMutex
	reducer *Reducer
	state   State
}

// NewSession creates a session starting from the given state.
func NewSession(reducer *Reducer, state State) *Session {
	return &Session{
		reducer: reducer,
		state:   state,
	}
}

// Dispatch applies the given actions in order and returns the resulting
// state. If an action fails, the actions before it stay applied.
func (s *Session) Dispatch(actions ...Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, action := range actions {
		next, err := s.reducer.Reduce(s.state, action)
		if err != nil {
			return s.state, err
		}
		s.state = next
	}

	return s.state, nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}
