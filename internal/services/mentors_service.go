package services

import (
	"context"

	"github.com/mentorlink/mentorlink-api/internal/cache"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
)

// MentorsService serves the mentee-facing mentor directory, cache first
// with a direct database fallback when the cache is disabled
type MentorsService struct {
	directory    cache.DirectoryCacheInterface
	users        repository.UserStore
	disableCache bool
}

// NewMentorsService creates a new MentorsService
func NewMentorsService(directory cache.DirectoryCacheInterface, users repository.UserStore, disableCache bool) *MentorsService {
	return &MentorsService{
		directory:    directory,
		users:        users,
		disableCache: disableCache,
	}
}

// ListMentors returns the directory of active mentors
func (s *MentorsService) ListMentors(ctx context.Context, forceRefresh bool) ([]*cache.DirectoryEntry, error) {
	if s.disableCache {
		return s.listFromDatabase(ctx)
	}

	if forceRefresh {
		return s.directory.ForceRefresh()
	}
	return s.directory.Get()
}

// GetMentor returns one directory entry
func (s *MentorsService) GetMentor(ctx context.Context, mentorID string) (*cache.DirectoryEntry, error) {
	if s.disableCache {
		entries, err := s.listFromDatabase(ctx)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.UserID == mentorID {
				return entry, nil
			}
		}
		return nil, apperrors.NotFoundError("mentor")
	}

	entry, err := s.directory.GetByID(mentorID)
	if err != nil {
		return nil, apperrors.NotFoundError("mentor")
	}
	return entry, nil
}

func (s *MentorsService) listFromDatabase(ctx context.Context) ([]*cache.DirectoryEntry, error) {
	mentors, profiles, err := s.users.ListMentors(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*cache.DirectoryEntry, 0, len(mentors))
	for _, mentor := range mentors {
		entries = append(entries, &cache.DirectoryEntry{
			UserID:  mentor.ID,
			Email:   mentor.Email,
			Profile: profiles[mentor.ID],
		})
	}
	return entries, nil
}
