package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopendraft/rule-clarifier/server/dao"
)

func TestSeedReferenceData_PopulatesManualsAndCirculars(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	svc := &ManualService{
		ManualDAO:   &dao.ManualDAO{Db: db},
		CircularDAO: &dao.CircularDAO{Db: db},
	}

	require.NoError(t, svc.SeedReferenceData(ctx))

	manuals, err := svc.ListManuals(ctx)
	require.NoError(t, err)
	require.Len(t, manuals, 3)

	circulars, err := svc.ListCirculars(ctx)
	require.NoError(t, err)
	require.Len(t, circulars, 2)

	irpwm, err := (&dao.ManualDAO{Db: db}).FindByCode(ctx, "IRPWM")
	require.NoError(t, err)
	require.NotNil(t, irpwm)
	assert.Equal(t, "Indian Railways Permanent Way Manual", irpwm.Title)
	require.NotNil(t, irpwm.Description)
}

func TestSeedReferenceData_RepeatedRunsUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	svc := &ManualService{
		ManualDAO:   &dao.ManualDAO{Db: db},
		CircularDAO: &dao.CircularDAO{Db: db},
	}

	require.NoError(t, svc.SeedReferenceData(ctx))
	require.NoError(t, svc.SeedReferenceData(ctx))

	manuals, err := svc.ListManuals(ctx)
	require.NoError(t, err)
	assert.Len(t, manuals, 3)

	circulars, err := svc.ListCirculars(ctx)
	require.NoError(t, err)
	assert.Len(t, circulars, 2)
}
