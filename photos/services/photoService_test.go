package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidSlot(t *testing.T) {
	require.True(t, ValidSlot(SlotApplicant))
	require.True(t, ValidSlot(SlotSpouse))
	require.True(t, ValidSlot("child:6f1c0f9a-0000-0000-0000-000000000000"))

	require.False(t, ValidSlot("passport"))
	require.False(t, ValidSlot(""))
}

func TestChildID(t *testing.T) {
	require.Equal(t, "abc-123", ChildID("child:abc-123"))
	require.Equal(t, "applicant", ChildID(SlotApplicant))
}

func TestStorageKey(t *testing.T) {
	require.Equal(t, "photos/app-1/applicant.jpg", StorageKey("app-1", SlotApplicant))
	require.Equal(t, "photos/app-1/child-xyz.jpg", StorageKey("app-1", "child:xyz"))
}
