package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockCodeParser is a mock implementation of port.CodeParser.
type MockCodeParser struct {
	mock.Mock
}

func (m *MockCodeParser) Name() string {
	return m.Called().String(0)
}

func (m *MockCodeParser) Description() string {
	return m.Called().String(0)
}

func (m *MockCodeParser) FileExtensions() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockCodeParser) MimeTypes() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockCodeParser) Parse(data []byte) ([]string, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
