package fs

import "os"

type Filesystem interface {
	Stat(string) (os.FileInfo, error)
	ReadFile(string) ([]byte, error)
	WriteFile(string, []byte, os.FileMode) error
	MkdirAll(string, os.FileMode) error
}

type OS struct{}

func (OS) Stat(name string) (os.FileInfo, error)  { return os.Stat(name) }
func (OS) ReadFile(name string) ([]byte, error)   { return os.ReadFile(name) }
func (OS) MkdirAll(p string, m os.FileMode) error { return os.MkdirAll(p, m) }

func (OS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}
