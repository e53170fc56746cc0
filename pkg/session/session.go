// Package session exposes the read-only surface of the browser session
// store that identity resolution consumes: a handful of named string
// values plus a bearer token. The engine never writes session state.
package session

import "github.com/spf13/viper"

// Reader returns the stored string for a key, or "" when absent.
type Reader interface {
	Get(key string) string
}

// Map is an in-memory Reader for tests and one-shot CLI runs.
type Map map[string]string

func (m Map) Get(key string) string {
	return m[key]
}

type viperReader struct {
	v *viper.Viper
}

func (r viperReader) Get(key string) string {
	return r.v.GetString("session." + key)
}

// FromViper adapts the session.* block of the config file into a Reader.
func FromViper(v *viper.Viper) Reader {
	return viperReader{v: v}
}
