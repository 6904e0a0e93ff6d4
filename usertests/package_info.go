// Package usertests contains the contract tests for the users REST API and their supporting API.
//
// Test harness infrastructure that is not specific to users, such as the test context, the REST
// client, and disposable remote resources, is in the lower-level framework package.
package usertests
