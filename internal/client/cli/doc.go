// Package cli provides the interactive wghub shell.
//
// The shell reads one command per line and dispatches it to App. Commands
// that take an id accept it as an argument and prompt for it otherwise.
// Failures are reported on the output and never end the session.
//
//	register, login, logout, deleteaccount, progress
//	household, createhousehold, join, leave, members, removemember
//	tasks, addtask, done, deltask
//	entries, addentry, delentry
//	absences, addabsence, delabsence
//	reconcile <family> <id>, sweep
//	help, exit
//
// Logout and deleteaccount resume where a failed attempt stopped; progress
// shows how far each sequence got.
package cli
