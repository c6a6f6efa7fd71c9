// Package seed imports demo users, posts and friendships from a spreadsheet.
//
// The workbook has up to three sheets, each with a header row:
//
//	users:       name | email | password
//	posts:       author email | body | image
//	friendships: requester email | recipient email | state (pending|confirmed)
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/internal/repositories"
	"github.com/mroshb/friends_api/internal/services"
	"github.com/mroshb/friends_api/pkg/errors"
	"github.com/mroshb/friends_api/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	SheetUsers       = "users"
	SheetPosts       = "posts"
	SheetFriendships = "friendships"
)

type Result struct {
	Users       int
	Posts       int
	Friendships int
	Skipped     int
}

type Importer struct {
	users     *repositories.UserRepository
	accounts  *services.UserService
	posts     *services.PostService
	friends   *services.FriendService
	idByEmail map[string]uint
}

func NewImporter(
	users *repositories.UserRepository,
	accounts *services.UserService,
	posts *services.PostService,
	friends *services.FriendService,
) *Importer {
	return &Importer{
		users:     users,
		accounts:  accounts,
		posts:     posts,
		friends:   friends,
		idByEmail: make(map[string]uint),
	}
}

// Import reads every known sheet of f. Bad rows are logged and skipped.
func (im *Importer) Import(ctx context.Context, f *excelize.File) (*Result, error) {
	res := &Result{}

	steps := []struct {
		sheet string
		row   func(context.Context, []string) error
		count *int
	}{
		{SheetUsers, im.importUser, &res.Users},
		{SheetPosts, im.importPost, &res.Posts},
		{SheetFriendships, im.importFriendship, &res.Friendships},
	}

	for _, step := range steps {
		if idx, _ := f.GetSheetIndex(step.sheet); idx < 0 {
			continue
		}

		rows, err := f.GetRows(step.sheet)
		if err != nil {
			return res, fmt.Errorf("read sheet %s: %w", step.sheet, err)
		}

		for i, row := range rows {
			if i == 0 {
				continue
			}
			if err := step.row(ctx, trimRow(row)); err != nil {
				logger.Warn("Skipping row", "sheet", step.sheet, "row", i+1, "error", err)
				res.Skipped++
				continue
			}
			*step.count++
		}
	}

	return res, nil
}

func (im *Importer) importUser(ctx context.Context, row []string) error {
	if len(row) < 3 {
		return fmt.Errorf("expected name, email and password")
	}

	user, _, err := im.accounts.Register(ctx, row[0], row[1], row[2])
	if err != nil {
		return err
	}
	im.idByEmail[user.Email] = user.ID
	return nil
}

func (im *Importer) importPost(ctx context.Context, row []string) error {
	if len(row) < 2 {
		return fmt.Errorf("expected author email and body")
	}

	authorID, err := im.userID(ctx, row[0])
	if err != nil {
		return err
	}

	image := ""
	if len(row) > 2 {
		image = row[2]
	}
	_, err = im.posts.CreatePost(ctx, authorID, row[1], image)
	return err
}

func (im *Importer) importFriendship(ctx context.Context, row []string) error {
	if len(row) < 2 {
		return fmt.Errorf("expected requester and recipient emails")
	}

	requesterID, err := im.userID(ctx, row[0])
	if err != nil {
		return err
	}
	recipientID, err := im.userID(ctx, row[1])
	if err != nil {
		return err
	}

	edge, err := im.friends.SendRequest(ctx, requesterID, recipientID)
	if err != nil {
		return err
	}

	state := "pending"
	if len(row) > 2 && row[2] != "" {
		state = strings.ToLower(row[2])
	}
	switch state {
	case "pending":
		return nil
	case "confirmed":
		if edge.IsConfirmed() {
			return nil
		}
		_, err = im.friends.RespondToRequest(ctx, edge.FriendID, edge.UserID, models.FriendStatusConfirmed)
		return err
	default:
		return fmt.Errorf("unknown friendship state %q", state)
	}
}

func (im *Importer) userID(ctx context.Context, email string) (uint, error) {
	email = strings.ToLower(email)
	if id, ok := im.idByEmail[email]; ok {
		return id, nil
	}

	user, err := im.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.ErrCodeUserNotFound) {
			return 0, fmt.Errorf("unknown user %q", email)
		}
		return 0, err
	}
	im.idByEmail[email] = user.ID
	return user.ID, nil
}

// Inspect returns the first limit rows of every sheet, header included.
func Inspect(f *excelize.File, limit int) (map[string][][]string, error) {
	out := make(map[string][][]string)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(rows) > limit {
			rows = rows[:limit]
		}
		out[sheet] = rows
	}
	return out, nil
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
