package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/hierarchy"
	"github.com/Hemantbam/Catalog-management/internal/model"
	"github.com/Hemantbam/Catalog-management/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory store shared by the three repository stubs ────────────────────

type stubStore struct {
	categories map[uuid.UUID]*model.Category
	products   map[uuid.UUID]*model.Product
	attributes map[uuid.UUID]*model.Attribute

	// err, when set, is returned by every call.
	err error
	// noRows makes every write report zero affected rows.
	noRows bool
}

func newStubStore() *stubStore {
	return &stubStore{
		categories: make(map[uuid.UUID]*model.Category),
		products:   make(map[uuid.UUID]*model.Product),
		attributes: make(map[uuid.UUID]*model.Attribute),
	}
}

func (s *stubStore) categoryRows() []model.Category {
	rows := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		rows = append(rows, *c)
	}
	return rows
}

// ── CategoryRepository stub ──────────────────────────────────────────────────

type stubCategoryRepo struct{ *stubStore }

var _ repository.CategoryRepository = stubCategoryRepo{}

func (r stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if r.err != nil {
		return r.err
	}
	if r.noRows {
		return repository.ErrNoRowsAffected
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	if c.ParentID != nil {
		if p, ok := r.categories[*c.ParentID]; ok {
			pc := *p
			cp.Parent = &pc
		}
	}
	return &cp, nil
}

func (r stubCategoryRepo) FindTopLevelByName(_ context.Context, name string) (*model.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.categories {
		if c.ParentID == nil && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubCategoryRepo) FindChildByName(_ context.Context, parentID uuid.UUID, name string) (*model.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == parentID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubCategoryRepo) ExistsSubcategoryNamed(_ context.Context, name string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, c := range r.categories {
		if c.ParentID != nil && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r stubCategoryRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	if r.err != nil {
		return r.err
	}
	c, ok := r.categories[id]
	if !ok || r.noRows {
		return repository.ErrNoRowsAffected
	}
	c.Name = name
	return nil
}

func (r stubCategoryRepo) DeleteSubtree(_ context.Context, id uuid.UUID) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.noRows {
		return 0, repository.ErrNoRowsAffected
	}
	ids, err := hierarchy.New(r.categoryRows()).Descendants(id)
	if err != nil {
		return 0, repository.ErrNoRowsAffected
	}
	doomed := make(map[uuid.UUID]bool, len(ids))
	for _, cid := range ids {
		doomed[cid] = true
		delete(r.categories, cid)
	}
	for _, p := range r.products {
		if p.CategoryID != nil && doomed[*p.CategoryID] {
			p.CategoryID = nil
		}
	}
	return int64(len(ids)), nil
}

func (r stubCategoryRepo) Subtree(_ context.Context, id uuid.UUID) ([]model.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	ids, err := hierarchy.New(r.categoryRows()).Descendants(id)
	if err != nil {
		return nil, nil
	}
	rows := make([]model.Category, 0, len(ids))
	for _, cid := range ids {
		rows = append(rows, *r.categories[cid])
	}
	return rows, nil
}

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct{ *stubStore }

var _ repository.ProductRepository = stubProductRepo{}

func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if r.err != nil {
		return r.err
	}
	if r.noRows {
		return repository.ErrNoRowsAffected
	}
	cp := *p
	cp.Category, cp.Attributes = nil, nil
	r.products[p.ID] = &cp
	return nil
}

func (r stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	if p.CategoryID != nil {
		if c, ok := r.categories[*p.CategoryID]; ok {
			cc := *c
			cp.Category = &cc
		}
	}
	return &cp, nil
}

func (r stubProductRepo) FindByNameInCategory(_ context.Context, name string, categoryID *uuid.UUID) (*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.products {
		if p.Name == name && sameCategory(p.CategoryID, categoryID) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubProductRepo) FindByIDInCategory(_ context.Context, id uuid.UUID, categoryID *uuid.UUID) (*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok || !sameCategory(p.CategoryID, categoryID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r stubProductRepo) Update(_ context.Context, id uuid.UUID, changes repository.ProductChanges) error {
	if r.err != nil {
		return r.err
	}
	p, ok := r.products[id]
	if !ok || r.noRows {
		return repository.ErrNoRowsAffected
	}
	p.Name = changes.Name
	p.Price = changes.Price
	if changes.Description != nil {
		d := *changes.Description
		p.Description = &d
	}
	return nil
}

func (r stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.products[id]; !ok || r.noRows {
		return repository.ErrNoRowsAffected
	}
	for aid, a := range r.attributes {
		if a.ProductID == id {
			delete(r.attributes, aid)
		}
	}
	delete(r.products, id)
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r stubProductRepo) Search(_ context.Context, f dto.ProductFilter) ([]model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Product
	for _, p := range r.products {
		var category *model.Category
		if p.CategoryID != nil {
			category = r.categories[*p.CategoryID]
		}
		if f.CategoryName != "" && (category == nil || !containsFold(category.Name, f.CategoryName)) {
			continue
		}
		if f.ProductName != "" && !containsFold(p.Name, f.ProductName) {
			continue
		}
		var attrs []model.Attribute
		keyHit := false
		for _, a := range r.attributes {
			if a.ProductID == p.ID {
				attrs = append(attrs, *a)
				keyHit = keyHit || containsFold(a.Key, f.AttributeKey)
			}
		}
		if f.AttributeKey != "" && !keyHit {
			continue
		}
		cp := *p
		if category != nil {
			cc := *category
			cp.Category = &cc
		}
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
		cp.Attributes = attrs
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── AttributeRepository stub ─────────────────────────────────────────────────

type stubAttributeRepo struct{ *stubStore }

var _ repository.AttributeRepository = stubAttributeRepo{}

func (r stubAttributeRepo) Create(_ context.Context, a *model.Attribute) error {
	if r.err != nil {
		return r.err
	}
	if r.noRows {
		return repository.ErrNoRowsAffected
	}
	cp := *a
	r.attributes[a.ID] = &cp
	return nil
}

func (r stubAttributeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Attribute, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.attributes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r stubAttributeRepo) FindByKey(_ context.Context, productID uuid.UUID, key string) (*model.Attribute, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.attributes {
		if a.ProductID == productID && a.Key == key {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubAttributeRepo) FindLinked(_ context.Context, id, productID uuid.UUID) (*model.Attribute, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.attributes[id]
	if !ok || a.ProductID != productID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r stubAttributeRepo) Update(_ context.Context, id, productID uuid.UUID, key, value string) error {
	if r.err != nil {
		return r.err
	}
	a, ok := r.attributes[id]
	if !ok || a.ProductID != productID || r.noRows {
		return repository.ErrNoRowsAffected
	}
	a.Key, a.Value = key, value
	return nil
}

func (r stubAttributeRepo) Delete(_ context.Context, id, productID uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	a, ok := r.attributes[id]
	if !ok || a.ProductID != productID || r.noRows {
		return repository.ErrNoRowsAffected
	}
	delete(r.attributes, id)
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	store      *stubStore
	categories CategoryService
	products   ProductService
	attributes AttributeService
}

func newFixture() *fixture {
	st := newStubStore()
	cats := stubCategoryRepo{st}
	prods := stubProductRepo{st}
	attrs := stubAttributeRepo{st}
	return &fixture{
		store:      st,
		categories: NewCategoryService(cats),
		products:   NewProductService(prods, cats),
		attributes: NewAttributeService(attrs, prods),
	}
}
