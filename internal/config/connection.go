package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/ini.v1"
)

// ConnectionSection is the INI section holding the WebDAV endpoint.
const ConnectionSection = "webdav"

var (
	// ErrMissingSection is returned when the connection file has no [webdav] section.
	ErrMissingSection = errors.New("connection file has no [webdav] section")

	// ErrMissingRoot is returned when the [webdav] section has no Root key.
	ErrMissingRoot = errors.New("connection file has no Root endpoint")
)

// Section and key names are case-insensitive and values are taken verbatim,
// including any "#" or ";" characters.
var loadOptions = ini.LoadOptions{
	Insensitive:         true,
	IgnoreInlineComment: true,
}

// Connection holds the WebDAV endpoint and credentials.
// Credentials are read verbatim and never validated.
type Connection struct {
	Root     string
	Login    string
	Password string
}

// LoadConnection reads an INI connection file:
//
//	[webdav]
//	Root = https://host
//	Login = user
//	Password = secret
func LoadConnection(path string) (*Connection, error) {
	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load connection file %s: %w", path, err)
	}
	return connectionFromINI(file)
}

// ParseConnection reads connection settings from INI data.
func ParseConnection(data []byte) (*Connection, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection data: %w", err)
	}
	return connectionFromINI(file)
}

func connectionFromINI(file *ini.File) (*Connection, error) {
	if !file.HasSection(ConnectionSection) {
		return nil, ErrMissingSection
	}
	section := file.Section(ConnectionSection)

	conn := &Connection{
		Root:     strings.TrimSpace(section.Key("root").String()),
		Login:    section.Key("login").String(),
		Password: section.Key("password").String(),
	}
	if conn.Root == "" {
		return nil, ErrMissingRoot
	}
	if _, err := url.ParseRequestURI(conn.Root); err != nil {
		return nil, fmt.Errorf("invalid Root endpoint %q: %w", conn.Root, err)
	}

	return conn, nil
}

// String renders the connection without its password.
func (c Connection) String() string {
	if c.Login == "" {
		return c.Root
	}
	return fmt.Sprintf("%s (login %s)", c.Root, c.Login)
}
