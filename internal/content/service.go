package content

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DailyContent is the inspiration block shown on the dashboard.
type DailyContent struct {
	Motivation string    `json:"motivation"`
	Tip        string    `json:"tip"`
	Prompt     string    `json:"prompt"`
	Fact       string    `json:"fact"`
	WordOfDay  WordOfDay `json:"wordOfDay"`
	Date       string    `json:"date"`
}

// Service rotates the daily content once per day. All users see the same
// selection for a given date.
type Service struct {
	mu      sync.RWMutex
	current DailyContent
	now     func() time.Time
}

func NewService() *Service {
	s := &Service{now: time.Now}
	s.rotate()
	return s
}

// Daily returns the current day's content.
func (s *Service) Daily() DailyContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// StartRotation schedules a nightly refresh at 12:00 AM.
func (s *Service) StartRotation() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.rotate()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Daily content rotation started (refreshing nightly at 12:00AM)")
	c.Start()
}

// rotate picks the day's entries deterministically from the day number, so a
// restart mid-day lands on the same selection.
func (s *Service) rotate() {
	t := s.now()
	day := int(t.Unix() / 86400)

	s.mu.Lock()
	s.current = DailyContent{
		Motivation: motivations[day%len(motivations)],
		Tip:        tips[day%len(tips)],
		Prompt:     prompts[day%len(prompts)],
		Fact:       facts[day%len(facts)],
		WordOfDay:  words[day%len(words)],
		Date:       t.Format("2006-01-02"),
	}
	s.mu.Unlock()
}
