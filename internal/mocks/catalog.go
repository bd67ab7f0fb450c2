// Package mocks holds hand-maintained gomock-style doubles for the
// collaborator interfaces config.Catalog and cell.LibraryProvider, in the
// shape go.uber.org/mock/mockgen would generate, for tests that need to
// simulate catalog or library-resolution failures without a real
// implementation.
package mocks

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/config"
)

// MockCatalog is a mock of the config.Catalog interface.
type MockCatalog struct {
	ctrl     *gomock.Controller
	recorder *MockCatalogMockRecorder
}

// MockCatalogMockRecorder is the mock recorder for MockCatalog.
type MockCatalogMockRecorder struct {
	mock *MockCatalog
}

// NewMockCatalog creates a new mock instance.
func NewMockCatalog(ctrl *gomock.Controller) *MockCatalog {
	mock := &MockCatalog{ctrl: ctrl}
	mock.recorder = &MockCatalogMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCatalog) EXPECT() *MockCatalogMockRecorder {
	return m.recorder
}

// ForwardingPrices mocks base method.
func (m *MockCatalog) ForwardingPrices(masterchain bool) (config.ForwardingPrices, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForwardingPrices", masterchain)
	ret0, _ := ret[0].(config.ForwardingPrices)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ForwardingPrices indicates an expected call.
func (mr *MockCatalogMockRecorder) ForwardingPrices(masterchain any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForwardingPrices", reflect.TypeOf((*MockCatalog)(nil).ForwardingPrices), masterchain)
}

// SizeLimits mocks base method.
func (m *MockCatalog) SizeLimits() (config.SizeLimits, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SizeLimits")
	ret0, _ := ret[0].(config.SizeLimits)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SizeLimits indicates an expected call.
func (mr *MockCatalogMockRecorder) SizeLimits() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SizeLimits", reflect.TypeOf((*MockCatalog)(nil).SizeLimits))
}

// IsMasterchain mocks base method.
func (m *MockCatalog) IsMasterchain(workchain int32) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsMasterchain", workchain)
	ret0, _ := ret[0].(bool)
	return ret0
}

// IsMasterchain indicates an expected call.
func (mr *MockCatalogMockRecorder) IsMasterchain(workchain any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsMasterchain", reflect.TypeOf((*MockCatalog)(nil).IsMasterchain), workchain)
}

// MockLibraryProvider is a mock of the cell.LibraryProvider interface.
type MockLibraryProvider struct {
	ctrl     *gomock.Controller
	recorder *MockLibraryProviderMockRecorder
}

// MockLibraryProviderMockRecorder is the mock recorder for MockLibraryProvider.
type MockLibraryProviderMockRecorder struct {
	mock *MockLibraryProvider
}

// NewMockLibraryProvider creates a new mock instance.
func NewMockLibraryProvider(ctrl *gomock.Controller) *MockLibraryProvider {
	mock := &MockLibraryProvider{ctrl: ctrl}
	mock.recorder = &MockLibraryProviderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLibraryProvider) EXPECT() *MockLibraryProviderMockRecorder {
	return m.recorder
}

// ResolveLibrary mocks base method.
func (m *MockLibraryProvider) ResolveLibrary(hash [32]byte) (*cell.Cell, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveLibrary", hash)
	ret0, _ := ret[0].(*cell.Cell)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// ResolveLibrary indicates an expected call.
func (mr *MockLibraryProviderMockRecorder) ResolveLibrary(hash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveLibrary", reflect.TypeOf((*MockLibraryProvider)(nil).ResolveLibrary), hash)
}
