package utils

import (
	"os"
	"os/user"
	"strings"
)

// Identity names who ran an operation and on which machine. Fields whose
// lookup failed are empty.
type Identity struct {
	User string
	Host string
}

// CurrentIdentity looks up the OS user and hostname for audit entries.
func CurrentIdentity() Identity {
	id := Identity{User: lookupUsername(user.Current, os.Getenv)}
	if host, err := os.Hostname(); err == nil {
		id.Host = host
	}
	return id
}

// lookupUsername prefers the account database and falls back to the login
// environment, which is all a container user without a passwd entry has.
// Windows account names carry a DOMAIN\ prefix that is dropped.
func lookupUsername(current func() (*user.User, error), getenv func(string) string) string {
	name := ""
	if u, err := current(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = getenv("USER")
	}
	if name == "" {
		name = getenv("USERNAME")
	}
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
