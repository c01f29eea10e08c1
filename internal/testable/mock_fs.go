package testable

import (
	"os"
)

// MockFileSystem is a test double for FileSystem. A non-nil ...Fn field
// replaces the method; otherwise the call goes to OsFileSystem, so tests only
// stub the operation they want to fail.
type MockFileSystem struct {
	StatFn      func(name string) (os.FileInfo, error)
	CreateFn    func(name string) (*os.File, error)
	WriteFileFn func(name string, data []byte, perm os.FileMode) error
	ReadFileFn  func(name string) ([]byte, error)
	MkdirAllFn  func(path string, perm os.FileMode) error
	OpenFn      func(name string) (*os.File, error)
}

var osFS OsFileSystem

// Stat calls StatFn if set.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	return osFS.Stat(name)
}

// Create calls CreateFn if set.
func (m *MockFileSystem) Create(name string) (*os.File, error) {
	if m.CreateFn != nil {
		return m.CreateFn(name)
	}
	return osFS.Create(name)
}

// WriteFile calls WriteFileFn if set.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.WriteFileFn != nil {
		return m.WriteFileFn(name, data, perm)
	}
	return osFS.WriteFile(name, data, perm)
}

// ReadFile calls ReadFileFn if set.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(name)
	}
	return osFS.ReadFile(name)
}

// MkdirAll calls MkdirAllFn if set.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return osFS.MkdirAll(path, perm)
}

// Open calls OpenFn if set.
func (m *MockFileSystem) Open(name string) (*os.File, error) {
	if m.OpenFn != nil {
		return m.OpenFn(name)
	}
	return osFS.Open(name)
}

// Compile-time interface check.
var _ FileSystem = (*MockFileSystem)(nil)
