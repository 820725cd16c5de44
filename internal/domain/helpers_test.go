package domain_test

import "github.com/google/uuid"

func mustUUID(v string) uuid.UUID {
	return uuid.MustParse(v)
}
