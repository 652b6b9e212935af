package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dgtlntv/design-tokens-validator/internal/schema"
	"github.com/dgtlntv/design-tokens-validator/internal/skills"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Validate(ctx context.Context, kind schema.Kind, targets []string,
	opts ValidateOptions,
) (bool, error) {
	args := m.Called(ctx, kind, targets, opts)
	return args.Bool(0), args.Error(1)
}

func (m *MockManager) WatchValidation(ctx context.Context, kind schema.Kind, targets []string,
	opts ValidateOptions, readyChan chan<- struct{},
) error {
	args := m.Called(ctx, kind, targets, opts, readyChan)
	return args.Error(0)
}

func (m *MockManager) BuildDist(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockManager) Skills() ([]skills.Skill, error) {
	args := m.Called()
	sk, _ := args.Get(0).([]skills.Skill)
	return sk, args.Error(1)
}

func (m *MockManager) Agents() ([]skills.Agent, error) {
	args := m.Called()
	ag, _ := args.Get(0).([]skills.Agent)
	return ag, args.Error(1)
}
