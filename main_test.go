package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationBinaryNameConstant       = "access-audit"
	integrationSnapshotDirectory        = "testdata/snapshot"
	integrationCommandTimeout           = 2 * time.Minute
	integrationLogLevelEnvironmentKey   = "ACCESSAUDIT_COMMON_LOG_LEVEL"
	integrationSkipShortModeMessage     = "integration test builds the binary"
	integrationStructuredLogFieldMarker = "\"run_id\":"
)

type integrationResult struct {
	exitCode       int
	standardOutput string
	standardError  string
}

func buildIntegrationBinary(testInstance *testing.T) string {
	testInstance.Helper()
	if testing.Short() {
		testInstance.Skip(integrationSkipShortModeMessage)
	}

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)
	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	buildCommand := exec.CommandContext(executionContext, "go", "build", "-o", binaryPath, ".")
	buildOutput, buildError := buildCommand.CombinedOutput()
	require.NoError(testInstance, buildError, string(buildOutput))
	return binaryPath
}

func runIntegrationBinary(testInstance *testing.T, binaryPath string, environment []string, arguments ...string) integrationResult {
	testInstance.Helper()
	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = testInstance.TempDir()
	command.Env = append(append([]string{}, os.Environ()...), "HOME="+testInstance.TempDir())
	command.Env = append(command.Env, environment...)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	command.Stdout = outputBuffer
	command.Stderr = errorBuffer

	exitCode := 0
	runError := command.Run()
	var exitError *exec.ExitError
	switch {
	case runError == nil:
	case errors.As(runError, &exitError):
		exitCode = exitError.ExitCode()
	default:
		require.NoError(testInstance, runError)
	}

	return integrationResult{exitCode: exitCode, standardOutput: outputBuffer.String(), standardError: errorBuffer.String()}
}

func TestAccessAuditIntegration(testInstance *testing.T) {
	binaryPath := buildIntegrationBinary(testInstance)
	snapshotDirectory, absoluteError := filepath.Abs(integrationSnapshotDirectory)
	require.NoError(testInstance, absoluteError)

	testCases := []struct {
		name             string
		arguments        []string
		expectedExitCode int
		expectedSnippets []string
	}{
		{
			name:             "user_records",
			arguments:        []string{"user-records", snapshotDirectory},
			expectedExitCode: 1,
			expectedSnippets: []string{
				"1. Linus Torvalds (U102) is ACTIVE but has no badge_id on file",
				"1. badge_id=B103 assigned to multiple users: Ken Thompson (U103), Dennis Ritchie (U104)",
			},
		},
		{
			name:             "orphan_badges",
			arguments:        []string{"orphan-badges", snapshotDirectory},
			expectedExitCode: 1,
			expectedSnippets: []string{
				"1. badge=B199 has groups=[ALL_ACCESS] but no matching user record",
				"1. badge=B101 has groups=[DATA_CENTER] but is not tied to an ACTIVE user (review)",
			},
		},
		{
			name:             "least_privilege",
			arguments:        []string{"least-privilege", snapshotDirectory},
			expectedExitCode: 1,
			expectedSnippets: []string{
				"Grace Hopper (U101, status=INACTIVE) badge=B101 has HIGH-RISK groups: [DATA_CENTER]",
				"UNKNOWN OWNER badge=B199 has REVIEW combo=[ALL_ACCESS] (current=[ALL_ACCESS])",
			},
		},
		{
			name:             "device_inventory",
			arguments:        []string{"device-inventory", snapshotDirectory},
			expectedExitCode: 1,
			expectedSnippets: []string{
				"1. device_id=CAM-DC-001 missing field=location",
				"1. PNL-DC-002 is ACTIVE but ip_address is blank",
				"1. ip_address=10.10.0.11 used by devices=[RDR-HQ-001, RDR-HQ-002] (possible record error/conflict)",
			},
		},
		{
			name:             "access_integrity",
			arguments:        []string{"access-integrity", snapshotDirectory},
			expectedExitCode: 1,
			expectedSnippets: []string{
				"1. Grace Hopper (U101) badge=B101 has groups=[DATA_CENTER] (last_day=2024-05-31)",
			},
		},
		{
			name:             "run_all",
			arguments:        []string{"run-all", snapshotDirectory},
			expectedExitCode: 1,
			expectedSnippets: []string{
				"RUN ALL AUDITS",
				"--- Running: device-inventory ---",
				"Done.",
			},
		},
		{
			name:             "missing_snapshot",
			arguments:        []string{"run-all", filepath.Join(snapshotDirectory, "absent")},
			expectedExitCode: 2,
			expectedSnippets: []string{"Done."},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			result := runIntegrationBinary(subtest, binaryPath, nil, testCase.arguments...)
			require.Equal(subtest, testCase.expectedExitCode, result.exitCode, result.standardError)
			for _, snippet := range testCase.expectedSnippets {
				require.Contains(subtest, result.standardOutput, snippet)
			}
		})
	}
}

func TestAccessAuditIntegrationKeepsLogsOffStandardOutput(testInstance *testing.T) {
	binaryPath := buildIntegrationBinary(testInstance)
	snapshotDirectory, absoluteError := filepath.Abs(integrationSnapshotDirectory)
	require.NoError(testInstance, absoluteError)

	result := runIntegrationBinary(testInstance, binaryPath, []string{integrationLogLevelEnvironmentKey + "=debug"}, "least-privilege", snapshotDirectory)
	require.Equal(testInstance, 1, result.exitCode)
	require.Contains(testInstance, result.standardError, integrationStructuredLogFieldMarker)
	require.False(testInstance, strings.Contains(result.standardOutput, integrationStructuredLogFieldMarker))
}
