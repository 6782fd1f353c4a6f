package usecase

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"lucius_backend/internal/feature/cases/domain/entity"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Role names allowed to author cases.
const (
	roleMentor = "mentor"
	roleAdmin  = "admin"
)

// CaseRepository はケースの永続化層を抽象化します。
type CaseRepository interface {
	Create(ctx context.Context, c *entity.Case) error
	// FindByID returns ErrCaseNotFound when id is unknown.
	FindByID(ctx context.Context, id uint) (*entity.Case, error)
	// List returns one page ordered newest first, plus the total count.
	List(ctx context.Context, offset, limit int) ([]entity.Case, int64, error)
	Update(ctx context.Context, c *entity.Case) error
	// Delete returns ErrCaseNotFound when id is unknown.
	Delete(ctx context.Context, id uint) error
}

// Actor は操作を行う認証済みユーザーです。
type Actor struct {
	UserID uint
	Roles  []string
}

func (a Actor) has(role string) bool { return slices.Contains(a.Roles, role) }

func (a Actor) canAuthor() bool { return a.has(roleMentor) || a.has(roleAdmin) }

// CaseInput は作成・更新で受け付ける内容です。
type CaseInput struct {
	Title      string
	BriefIntro string
	Content    string
	DemoURL    string
}

// Page はケース一覧の1ページです。
type Page struct {
	Items []entity.Case
	Total int64
	Page  int
	Size  int
}

type caseUsecase struct {
	repo CaseRepository
}

func NewCaseUsecase(repo CaseRepository) *caseUsecase {
	return &caseUsecase{repo: repo}
}

// Create はメンターまたは管理者としてケースを作成します。
func (u *caseUsecase) Create(ctx context.Context, actor Actor, in CaseInput) (*entity.Case, error) {
	if !actor.canAuthor() {
		return nil, ErrForbidden
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	c := &entity.Case{
		AuthorID:   actor.UserID,
		Title:      in.Title,
		BriefIntro: in.BriefIntro,
		Content:    in.Content,
		DemoURL:    in.DemoURL,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *caseUsecase) Get(ctx context.Context, id uint) (*entity.Case, error) {
	return u.repo.FindByID(ctx, id)
}

// List はページ番号（1始まり）とサイズで一覧を返します。サイズは MaxPageSize に丸めます。
func (u *caseUsecase) List(ctx context.Context, page, size int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	items, total, err := u.repo.List(ctx, (page-1)*size, size)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Page: page, Size: size}, nil
}

// Update は作成者または管理者のみ実行できます。
func (u *caseUsecase) Update(ctx context.Context, actor Actor, id uint, in CaseInput) (*entity.Case, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	c, err := u.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	c.Title = in.Title
	c.BriefIntro = in.BriefIntro
	c.Content = in.Content
	c.DemoURL = in.DemoURL
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete は作成者または管理者のみ実行できます。
func (u *caseUsecase) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := u.editable(ctx, actor, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func (u *caseUsecase) editable(ctx context.Context, actor Actor, id uint) (*entity.Case, error) {
	if !actor.canAuthor() {
		return nil, ErrForbidden
	}
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != actor.UserID && !actor.has(roleAdmin) {
		return nil, ErrForbidden
	}
	return c, nil
}

func validate(in CaseInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "", utf8.RuneCountInString(in.Title) > entity.MaxTitleLength:
		return fmt.Errorf("%w: title", ErrInvalidInput)
	case strings.TrimSpace(in.BriefIntro) == "", utf8.RuneCountInString(in.BriefIntro) > entity.MaxBriefIntroLength:
		return fmt.Errorf("%w: brief intro", ErrInvalidInput)
	case strings.TrimSpace(in.Content) == "":
		return fmt.Errorf("%w: content", ErrInvalidInput)
	}
	if in.DemoURL != "" {
		u, err := url.ParseRequestURI(in.DemoURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: demo url", ErrInvalidInput)
		}
	}
	return nil
}
