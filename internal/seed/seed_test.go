package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/store/memory"
)

func TestSeeder_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seeder := New(s, services.NewBlogService(s, nil, zerolog.Nop()), zerolog.Nop())

	res, err := seeder.Blog(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCategories), res.CategoriesCreated)
	assert.Equal(t, len(SamplePosts), res.PostsCreated)

	res, err = seeder.Blog(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.CategoriesCreated)
	assert.Zero(t, res.PostsCreated)
	assert.Equal(t, len(DefaultCategories), res.CategoriesSkipped)
	assert.Equal(t, len(SamplePosts), res.PostsSkipped)

	_, total, err := s.Blog().ListPosts(ctx, models.PostFilter{Status: models.PostPublished, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, len(SamplePosts), total)

	cats, err := s.Blog().ListActiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(DefaultCategories))
	assert.Equal(t, "Community Stories", cats[0].Name)
}
