// Package services contains the application services of the wghub client:
// signing in and out, account deletion, and household membership.
//
// Services never write the local cache directly. Every change is made on the
// backend first and then pulled into the cache through the sync
// repositories, so the cache only ever holds what the backend confirmed.
package services
