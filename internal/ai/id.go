package ai

import "github.com/google/uuid"

func newSectionID() string { return uuid.NewString() }
