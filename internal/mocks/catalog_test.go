package mocks

import (
	"errors"
	"testing"

	gomock "go.uber.org/mock/gomock"

	"github.com/tonkeeper/tvmcore/config"
)

func TestMockCatalog_FetchSnapshotPropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	cat := NewMockCatalog(ctrl)

	wantErr := errors.New("config source unavailable")
	cat.EXPECT().ForwardingPrices(true).Return(config.DefaultPrices(), nil).AnyTimes()
	cat.EXPECT().ForwardingPrices(false).Return(config.DefaultPrices(), nil).AnyTimes()
	cat.EXPECT().SizeLimits().Return(config.SizeLimits{}, wantErr)

	_, err := config.FetchSnapshot(cat)
	if err == nil {
		t.Fatal("expected an error from FetchSnapshot")
	}
}

func TestMockLibraryProvider_ResolveLibraryMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := NewMockLibraryProvider(ctrl)

	var hash [32]byte
	provider.EXPECT().ResolveLibrary(hash).Return(nil, false)

	c, ok := provider.ResolveLibrary(hash)
	if ok || c != nil {
		t.Fatalf("expected a miss, got (%v, %v)", c, ok)
	}
}
