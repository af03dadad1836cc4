package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type txKey struct{}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestWithUnitOfWork(t *testing.T) {
	errBegin := errors.New("begin failed")
	errCommit := errors.New("commit failed")
	errSave := errors.New("task save failed")
	errRollback := errors.New("rollback failed")

	tests := []struct {
		name        string
		beginErr    error
		fnErr       error
		commitErr   error
		rollbackErr error
		wantErr     error
		wantRan     bool
		wantCommit  bool
		wantRevert  bool
	}{
		{name: "commits on success", wantRan: true, wantCommit: true},
		{name: "begin failure skips fn", beginErr: errBegin, wantErr: errBegin},
		{name: "fn failure rolls back", fnErr: errSave, wantErr: errSave, wantRan: true, wantRevert: true},
		{name: "rollback failure keeps fn error", fnErr: errSave, rollbackErr: errRollback, wantErr: errSave, wantRan: true, wantRevert: true},
		{name: "commit failure is returned", commitErr: errCommit, wantErr: errCommit, wantRan: true, wantCommit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			txCtx := context.WithValue(ctx, txKey{}, "tx")

			uow := new(mockUnitOfWork)
			if tt.beginErr != nil {
				uow.On("Begin", ctx).Return(ctx, tt.beginErr)
			} else {
				uow.On("Begin", ctx).Return(txCtx, nil)
			}
			if tt.wantCommit {
				uow.On("Commit", txCtx).Return(tt.commitErr)
			}
			if tt.wantRevert {
				uow.On("Rollback", txCtx).Return(tt.rollbackErr)
			}

			ran := false
			err := WithUnitOfWork(ctx, uow, func(got context.Context) error {
				ran = true
				assert.Equal(t, "tx", got.Value(txKey{}), "fn must run inside the transaction")
				return tt.fnErr
			})

			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantRan, ran)
			uow.AssertExpectations(t)
			if !tt.wantCommit {
				uow.AssertNotCalled(t, "Commit", mock.Anything)
			}
		})
	}
}

func TestWithUnitOfWork_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txKey{}, "tx")

	uow := new(mockUnitOfWork)
	uow.On("Begin", ctx).Return(txCtx, nil)
	uow.On("Rollback", txCtx).Return(nil)

	assert.PanicsWithValue(t, "boom", func() {
		_ = WithUnitOfWork(ctx, uow, func(context.Context) error {
			panic("boom")
		})
	})

	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
