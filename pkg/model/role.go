package model

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -json -sql -output role.gen.go

// Role is the access level of a user. Surveyors (topographe) are restricted
// to their own records; administrators have full access to users and records.
type Role int

const (
	RoleTopographe Role = iota
	RoleAdministrateur
)
