// Copyright 2024 - 2025 PetrelDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/petreldb/petrel/pkg/config"
	"github.com/petreldb/petrel/pkg/engine"
	"github.com/petreldb/petrel/pkg/logutil"
)

func waitSignal() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGTERM, syscall.SIGINT)
	<-sigchan
}

func cleanup() {
	fmt.Println("\rBye!")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("usage: %s configFile\n", os.Args[0])
		os.Exit(-1)
	}

	var vars config.Variables
	if err := vars.LoadInitialValues(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(-1)
	}
	if err := config.LoadVarsConfigFromFile(os.Args[1], &vars); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(-1)
	}

	e := engine.New(context.Background(), &vars)
	logutil.Infof("serving database %s", e.Vars().DefaultDatabase)

	waitSignal()
	cleanup()
}
