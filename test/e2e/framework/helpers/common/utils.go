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

package common

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"

	"github.com/apache/spark-k8s-integration-tests/test/e2e/framework/configmanager"
)

func GetAbsPath(p string) (string, error) {
	path, err := filepath.Abs(p)
	return path, err
}

// GetTestName returns the test Name in a single string without spaces or /
func GetTestName() string {
	//nolint
	testReport := ginkgo.CurrentSpecReport()
	name := strings.ReplaceAll(testReport.FullText(), " ", "_")
	name = strings.Trim(name, "*")
	return strings.ReplaceAll(name, "/", "-")
}

func GetFileContents(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	return data, err
}

func GetUUID() string {
	return uuid.NewString()
}

func RandSeq(n int) string {
	var letters = []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	b := make([]rune, n)
	for i := range b {
		//nolint:gosec
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// CreateJUnitReportDir creates the directory the junit reports go to.
func CreateJUnitReportDir() error {
	dir := configmanager.SparkTestConfig.LogDir
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	err := os.MkdirAll(dir, os.ModePerm)
	return err
}

func RunShellCmdForeground(cmdStr string) (string, error) {
	if len(cmdStr) == 0 {
		return "", fmt.Errorf("not enough arguments")
	}

	cmdSplit := strings.Fields(cmdStr)

	execPath, err := exec.LookPath(cmdSplit[0])
	if err != nil {
		return "", err
	}

	errStream := new(bytes.Buffer)
	stdOutStream := new(bytes.Buffer)
	cmd := &exec.Cmd{
		Path:   execPath,
		Args:   cmdSplit,
		Stdout: stdOutStream,
		Stderr: errStream,
	}

	if err := cmd.Run(); err != nil {
		return "", err
	}

	if errStr := errStream.String(); len(errStr) > 0 {
		return stdOutStream.String(), errors.New(errStr)
	}

	return stdOutStream.String(), nil
}

func CreateLogFile(suiteName string, specName string, logType string, extension string) (*os.File, error) {
	filePath, err := getLogFilePath(suiteName, specName, logType, extension)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filePath)
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, err
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(ginkgo.GinkgoWriter, "Created log file: %s\n", filePath)
	return file, nil
}

func getLogFilePath(suiteName string, specName string, logType string, extension string) (string, error) {
	gitRoot, runErr := RunShellCmdForeground("git rev-parse --show-toplevel")
	if runErr != nil {
		return "", runErr
	}
	gitRoot = strings.TrimSpace(gitRoot)
	suiteName = replaceInvalidFileChars(strings.TrimSpace(suiteName))
	specName = replaceInvalidFileChars(strings.TrimSpace(specName))

	dumpLogFilePath := filepath.Join(gitRoot, configmanager.LogPath, suiteName, fmt.Sprintf("%s_%s.%s", specName, logType, extension))
	return dumpLogFilePath, nil
}

func replaceInvalidFileChars(str string) string {
	// some charaters are not allowed in upload-artifact : https://github.com/actions/upload-artifact/issues/333
	invalidChars := []string{"\"", ":", "<", ">", "|", "*", "?", "\r", "\n"}
	for _, char := range invalidChars {
		str = strings.ReplaceAll(str, char, "_")
	}
	return str
}

func GetSuiteName(testFilePath string) string {
	dir := filepath.Dir(testFilePath)
	suiteName := filepath.Base(dir)
	return suiteName
}
