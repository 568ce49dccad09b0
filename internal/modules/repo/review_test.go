package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nsbdesign/proofroom/internal/modules/model"
	"github.com/nsbdesign/proofroom/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// one connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Project{},
		&model.Review{},
		&model.DesignItem{},
		&model.Comment{},
		&model.Approval{},
		&model.ActivityLog{},
	))
	return db
}

func seedReview(t *testing.T, db *gorm.DB) *model.Review {
	t.Helper()

	p := model.Project{ProjectNumber: "NSB-2024-001", Name: "Brand Identity Package"}
	require.NoError(t, db.Create(&p).Error)

	rv := model.Review{ProjectID: p.ID, ShareLink: "abc123xyz0"}
	require.NoError(t, db.Create(&rv).Error)
	return &rv
}

func TestReviewRepo_CreateApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("status follows the last recorded decision", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewReviewRepo(db)
		rv := seedReview(t, db)

		decisions := []model.Decision{
			model.DecisionApproved,
			model.DecisionRevisionRequested,
			model.DecisionApproved,
		}
		for _, d := range decisions {
			err := repo.CreateApproval(ctx, &model.Approval{
				ReviewID:  rv.ID,
				FirstName: "Sam",
				LastName:  "Rivera",
				Decision:  d,
			})
			require.NoError(t, err)

			got, err := repo.Get(ctx, rv.ID)
			require.NoError(t, err)
			assert.Equal(t, d.Status(), got.Status)
		}

		approvals, err := repo.ListApprovals(ctx, rv.ID)
		require.NoError(t, err)
		assert.Len(t, approvals, len(decisions))
		assert.Equal(t, model.DecisionApproved, approvals[len(approvals)-1].Decision)
	})

	t.Run("unknown review rolls the whole write back", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewReviewRepo(db)

		err := repo.CreateApproval(ctx, &model.Approval{
			ReviewID:  uuid.New(),
			FirstName: "Sam",
			LastName:  "Rivera",
			Decision:  model.DecisionApproved,
		})

		var nf *apperr.NotFoundError
		assert.ErrorAs(t, err, &nf)

		var n int64
		require.NoError(t, db.Model(&model.Approval{}).Count(&n).Error)
		assert.Zero(t, n)
	})
}

func TestReviewRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate share link is ConflictError", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewReviewRepo(db)
		rv := seedReview(t, db)

		err := repo.Create(ctx, &model.Review{ProjectID: rv.ProjectID, ShareLink: rv.ShareLink})

		var ce *apperr.ConflictError
		assert.ErrorAs(t, err, &ce)
	})
}
