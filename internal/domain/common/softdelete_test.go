package common_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func reports() []partner.QuarterlyReport {
	return []partner.QuarterlyReport{
		{ID: "r1", PartnerID: "p1", ReportDate: "2025-03-31", Link: "https://docs/q1"},
		{ID: "r2", PartnerID: "p1", ReportDate: "2025-06-30", Link: "https://docs/q2"},
	}
}

func TestUpsertReplacesByID(t *testing.T) {
	items := reports()
	updated := common.Upsert(items, partner.QuarterlyReport{ID: "r2", PartnerID: "p1", Link: "https://docs/q2-v2"})

	require.Len(t, updated, 2)
	assert.Equal(t, "https://docs/q2-v2", updated[1].Link)
	assert.Equal(t, "https://docs/q2", items[1].Link, "input is not modified")
}

func TestUpsertAppendsNewItem(t *testing.T) {
	updated := common.Upsert(reports(), partner.QuarterlyReport{ID: "r3"})

	require.Len(t, updated, 3)
	assert.Equal(t, "r3", updated[2].ID)
}

func TestSoftDeleteThenRestoreIsReversible(t *testing.T) {
	before := reports()

	deleted, ok := common.SoftDelete(before, "r1", time.Now())
	require.True(t, ok)
	require.NotNil(t, deleted[0].DeletedAt)
	assert.Len(t, common.Active(deleted), 1)
	assert.Len(t, common.Deleted(deleted), 1)

	restored, ok := common.Restore(deleted, "r1")
	require.True(t, ok)
	assert.Equal(t, before, restored)
}

func TestSoftDeleteUnknownID(t *testing.T) {
	out, ok := common.SoftDelete(reports(), "missing", time.Now())
	assert.False(t, ok)
	assert.Equal(t, reports(), out)
}

func TestPurgeRemovesRow(t *testing.T) {
	out, ok := common.Purge(reports(), "r1")
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, "r2", out[0].ID)

	_, ok = common.Purge(out, "r1")
	assert.False(t, ok)
}

func TestViewIncludes(t *testing.T) {
	now := time.Now()
	assert.True(t, common.ViewActive.Includes(nil))
	assert.False(t, common.ViewActive.Includes(&now))
	assert.True(t, common.ViewDeleted.Includes(&now))
	assert.False(t, common.ViewDeleted.Includes(nil))
	assert.True(t, common.ViewAll.Includes(nil))

	v, ok := common.ViewFromString("")
	assert.True(t, ok)
	assert.Equal(t, common.ViewActive, v)
	_, ok = common.ViewFromString("trash")
	assert.False(t, ok)
}

func TestValidationErrorUnwraps(t *testing.T) {
	err := common.NewValidationError("name", "is required")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "name is required", err.Error())
}
