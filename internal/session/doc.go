// Package session owns the login and persistence state machine. A
// Controller tracks who is signed in and which store the session
// writes to, then routes plan, check-in, chat and evaluation
// operations to the backend client, the cloud spreadsheet adapter, or
// the local workbook file.
package session
