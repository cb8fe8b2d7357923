package repository

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/haikuowuya/Rosie/cache"
	"github.com/haikuowuya/Rosie/datasource"
	mock_datasource "github.com/haikuowuya/Rosie/datasource/mocks"
	"github.com/haikuowuya/Rosie/timeprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// pagedUsers serves a fixed list both page by page and by key
type pagedUsers struct {
	mu        sync.Mutex
	users     []user
	pageCalls int
}

func (p *pagedUsers) Name() string {
	return "paged-users"
}

func (p *pagedUsers) GetPage(_ context.Context, page datasource.Page) (datasource.PaginatedCollection[user], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pageCalls++

	end := page.Offset + page.Limit
	if end > len(p.users) {
		end = len(p.users)
	}
	var window []user
	if page.Offset < end {
		window = p.users[page.Offset:end]
	}
	return datasource.NewPaginatedCollection(page, window, end < len(p.users)), nil
}

func (p *pagedUsers) GetByKey(_ context.Context, key string) (user, bool, error) {
	for _, u := range p.users {
		if u.ID == key {
			return u, true, nil
		}
	}
	return user{}, false, nil
}

func (p *pagedUsers) GetAll(context.Context) ([]user, error) {
	return p.users, nil
}

func (p *pagedUsers) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageCalls
}

func newPageCache() (*cache.PaginatedInMemoryCacheDataSource[string, user], *timeprovider.Manual) {
	clock := timeprovider.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return cache.NewPaginatedInMemoryCacheDataSource[string, user](time.Minute, userKey,
		cache.WithName("pages"), cache.WithTimeProvider(clock)), clock
}

func TestPaginatedRepository_EndOfData(t *testing.T) {
	ctx := context.Background()
	pageCache, _ := newPageCache()
	source := &pagedUsers{users: []user{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	repo := NewPaginated[string, user](userKey, pageCache, source, Sources[string, user]{})

	page := datasource.Page{Offset: 0, Limit: 10}
	collection, found, err := repo.GetPage(ctx, page)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, collection.Len())
	assert.False(t, collection.HasMore)

	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, pageCache.IsValid(id), id)
	}
	assert.True(t, pageCache.IsPageValid(page))

	// Served from the cache the second time
	again, found, err := repo.GetPage(ctx, page)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, collection.Items, again.Items)
	assert.False(t, again.HasMore)
	assert.Equal(t, 1, source.calls())
}

func TestPaginatedRepository_WalksPages(t *testing.T) {
	ctx := context.Background()
	pageCache, _ := newPageCache()
	source := &pagedUsers{users: []user{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}}
	repo := NewPaginated[string, user](userKey, pageCache, source, Sources[string, user]{})

	first, _, err := repo.GetPage(ctx, datasource.Page{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []user{{ID: "a"}, {ID: "b"}}, first.Items)
	assert.True(t, first.HasMore)

	second, _, err := repo.GetPage(ctx, datasource.Page{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []user{{ID: "c"}, {ID: "d"}}, second.Items)
	assert.True(t, second.HasMore)

	last, _, err := repo.GetPage(ctx, datasource.Page{Offset: 4, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []user{{ID: "e"}}, last.Items)
	assert.False(t, last.HasMore)
	assert.Equal(t, 3, source.calls())
}

func TestPaginatedRepository_ExpiredWindowRefetches(t *testing.T) {
	ctx := context.Background()
	pageCache, clock := newPageCache()
	source := &pagedUsers{users: []user{{ID: "a"}, {ID: "b"}}}
	repo := NewPaginated[string, user](userKey, pageCache, source, Sources[string, user]{})

	page := datasource.Page{Offset: 0, Limit: 5}
	_, _, err := repo.GetPage(ctx, page)
	require.NoError(t, err)

	clock.Advance(time.Minute + time.Second)
	_, found, err := repo.GetPage(ctx, page)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, source.calls())
}

func TestPaginatedRepository_CacheOnlyMiss(t *testing.T) {
	ctx := context.Background()
	pageCache, _ := newPageCache()
	source := &pagedUsers{users: []user{{ID: "a"}}}
	repo := NewPaginated[string, user](userKey, pageCache, source, Sources[string, user]{})

	collection, found, err := repo.GetPage(ctx, datasource.Page{Offset: 0, Limit: 5}, ReadCacheOnly)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, collection.Items)
	assert.Equal(t, 0, source.calls())
}

func TestPaginatedRepository_ReadableFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	readable := mock_datasource.NewMockPaginatedReadable[user](ctrl)
	readable.EXPECT().GetPage(gomock.Any(), gomock.Any()).Return(datasource.PaginatedCollection[user]{}, errBackend)

	pageCache, _ := newPageCache()
	repo := NewPaginated[string, user](userKey, pageCache, readable, Sources[string, user]{})

	_, found, err := repo.GetPage(ctx, datasource.Page{Offset: 0, Limit: 5})
	require.Error(t, err)
	assert.False(t, found)
	assert.True(t, IsSourceFailure(err))
	assert.ErrorIs(t, err, errBackend)
}

func TestPaginatedRepository_CacheFailureIsAMiss(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	page := datasource.Page{Offset: 0, Limit: 2}
	want := datasource.NewPaginatedCollection(page, []user{{ID: "a"}, {ID: "b"}}, true)

	pageCache := mock_datasource.NewMockPaginatedCache[string, user](ctrl)
	pageCache.EXPECT().GetPage(gomock.Any(), page).Return(datasource.PaginatedCollection[user]{}, false, errBackend)
	pageCache.EXPECT().AddOrUpdatePage(gomock.Any(), page, want.Items, true).Return(errBackend)

	readable := mock_datasource.NewMockPaginatedReadable[user](ctrl)
	readable.EXPECT().GetPage(gomock.Any(), page).Return(want, nil)

	repo := NewPaginated[string, user](userKey, pageCache, readable, Sources[string, user]{})

	collection, found, err := repo.GetPage(ctx, page)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, collection)
}

func TestPaginatedRepository_PopulatesOtherCaches(t *testing.T) {
	ctx := context.Background()
	pageCache, _ := newPageCache()
	secondary := newMemoryCache("secondary")
	source := &pagedUsers{users: []user{{ID: "a"}, {ID: "b"}}}

	repo := NewPaginated[string, user](userKey, pageCache, source, Sources[string, user]{
		Caches: []datasource.Cache[string, user]{secondary},
	})

	_, _, err := repo.GetPage(ctx, datasource.Page{Offset: 0, Limit: 5})
	require.NoError(t, err)
	assert.True(t, secondary.IsValid("a"))
	assert.True(t, secondary.IsValid("b"))
}

func TestPaginatedRepository_NoSources(t *testing.T) {
	repo := NewPaginated[string, user](userKey, nil, nil, Sources[string, user]{})

	_, _, err := repo.GetPage(context.Background(), datasource.Page{Offset: 0, Limit: 5})
	assert.True(t, IsConfigurationError(err))
}

func TestPaginatedRepository_RegistersPageSourcesOnce(t *testing.T) {
	ctx := context.Background()
	pageCache, _ := newPageCache()
	source := &pagedUsers{users: []user{{ID: "a"}}}

	repo := NewPaginated[string, user](userKey, pageCache, source, Sources[string, user]{
		Caches:    []datasource.Cache[string, user]{pageCache},
		Readables: []datasource.Readable[string, user]{source},
	})

	// Non-paginated operations go through the page cache and the paged source
	value, found, err := repo.GetByKey(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, user{ID: "a"}, value)
	assert.True(t, pageCache.IsValid("a"))

	result, err := repo.DeleteByKey(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"pages"}, result.Attempted())
}

func TestPaginatedRepository_HugeWindowsGoToReadable(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	pageCache, _ := newPageCache()
	require.NoError(t, pageCache.AddOrUpdatePage(ctx, datasource.Page{Offset: 0, Limit: 2}, []user{{ID: "a"}, {ID: "b"}}, true))

	readable := mock_datasource.NewMockPaginatedReadable[user](ctrl)
	pastEnd := datasource.Page{Offset: math.MaxInt, Limit: 100}
	unbounded := datasource.Page{Offset: 1, Limit: math.MaxInt}
	readable.EXPECT().GetPage(gomock.Any(), pastEnd).
		Return(datasource.NewPaginatedCollection[user](pastEnd, nil, false), nil)
	readable.EXPECT().GetPage(gomock.Any(), unbounded).
		Return(datasource.NewPaginatedCollection(unbounded, []user{{ID: "b"}}, false), nil)

	repo := NewPaginated[string, user](userKey, pageCache, readable, Sources[string, user]{})

	collection, found, err := repo.GetPage(ctx, pastEnd)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, collection.Items)

	collection, found, err = repo.GetPage(ctx, unbounded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []user{{ID: "b"}}, collection.Items)
}
