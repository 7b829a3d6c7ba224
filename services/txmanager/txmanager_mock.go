package txmanager

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock implementation of services.TransactionManager.
// Use RunInTransaction to execute the callback before returning the stubbed error.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// RunInTransaction is a mock.Call Run function that invokes the transaction callback.
// An error from the callback is ignored; the stubbed return value decides the result.
func RunInTransaction(args mock.Arguments) {
	ctx := args.Get(0).(context.Context)
	fn := args.Get(1).(func(context.Context) error)
	_ = fn(ctx)
}
