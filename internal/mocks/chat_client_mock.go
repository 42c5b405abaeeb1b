package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rpg-engine/shared/interfaces"
	"rpg-engine/shared/models"
)

// MockChatClient is a mock type for the ChatClient type
type MockChatClient struct {
	mock.Mock
}

// Chat provides a mock function with given fields: ctx, messages
func (_m *MockChatClient) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	ret := _m.Called(ctx, messages)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, []models.ChatMessage) string); ok {
		r0 = rf(ctx, messages)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, []models.ChatMessage) error); ok {
		r1 = rf(ctx, messages)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// NewMockChatClient creates a new instance of MockChatClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChatClient(t interface {
	mock.TestingT
	Helper()
}) *MockChatClient {
	m := &MockChatClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.ChatClient = (*MockChatClient)(nil)
