// Package model contains the database models for topodaily.
package model
