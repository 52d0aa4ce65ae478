package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"classpoll/internal/repository"
)

// ExportService renders poll and vote data as downloadable CSV attachments.
// Column orders are part of the external contract.
type ExportService struct {
	pollRepo repository.PollRepository
	voteRepo repository.VoteRepository
}

func NewExportService(pollRepo repository.PollRepository, voteRepo repository.VoteRepository) *ExportService {
	return &ExportService{pollRepo: pollRepo, voteRepo: voteRepo}
}

// Export is a generated CSV attachment.
type Export struct {
	Filename string
	Data     []byte
}

var nonWordChars = regexp.MustCompile(`[^\w\s-]`)

func (s *ExportService) PollVotes(ctx context.Context, pollID uint) (Export, error) {
	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return Export{}, err
	}
	records, err := s.voteRepo.ListByPoll(ctx, pollID)
	if err != nil {
		return Export{}, err
	}

	rows := [][]string{{"Poll ID", "Poll Title", "Username", "Voted For", "Vote Timestamp"}}
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(pollID), 10),
			p.Title,
			rec.Username,
			rec.OptionName,
			rec.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := writeCSV(rows)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Filename: fmt.Sprintf("poll_%d_%s_votes.csv", pollID, sanitizeTitle(p.Title)),
		Data:     data,
	}, nil
}

func (s *ExportService) AllVotes(ctx context.Context) (Export, error) {
	records, err := s.voteRepo.ListAll(ctx)
	if err != nil {
		return Export{}, err
	}

	rows := [][]string{{"Vote ID", "Poll ID", "Poll Title", "Username", "Voted For", "Vote Timestamp"}}
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(rec.VoteID), 10),
			strconv.FormatUint(uint64(rec.PollID), 10),
			rec.PollTitle,
			rec.Username,
			rec.OptionName,
			rec.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := writeCSV(rows)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Filename: fmt.Sprintf("all_votes_%s.csv", time.Now().Format("20060102_150405")),
		Data:     data,
	}, nil
}

func (s *ExportService) PollsSummary(ctx context.Context) (Export, error) {
	polls, err := s.pollRepo.List(ctx)
	if err != nil {
		return Export{}, err
	}

	rows := [][]string{{"Poll ID", "Poll Title", "Description", "Option Name", "Votes", "Created At"}}
	for _, p := range polls {
		for _, o := range p.Options {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(p.ID), 10),
				p.Title,
				p.Description,
				o.Name,
				strconv.FormatInt(o.Votes, 10),
				p.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	data, err := writeCSV(rows)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Filename: fmt.Sprintf("polls_summary_%s.csv", time.Now().Format("20060102_150405")),
		Data:     data,
	}, nil
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sanitizeTitle strips everything but word characters, whitespace and
// hyphens, swaps spaces for underscores and caps the length at 50 runes.
func sanitizeTitle(title string) string {
	clean := nonWordChars.ReplaceAllString(title, "")
	clean = strings.ReplaceAll(clean, " ", "_")
	runes := []rune(clean)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes)
}
