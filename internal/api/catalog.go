package api

import (
	"net/http"
	"net/url"

	"librio/pkg/domain"
)

func (c *Client) Authors() ([]domain.Author, error) {
	var authors []domain.Author
	if err := c.doJSON(http.MethodGet, "/api/authors", nil, nil, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (c *Client) SearchAuthors(name string) ([]domain.Author, error) {
	var authors []domain.Author
	query := url.Values{"name": {name}}
	if err := c.doJSON(http.MethodGet, "/api/authors/search", query, nil, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (c *Client) CreateAuthor(name string) (domain.Author, error) {
	payload := map[string]string{"name": name}
	var author domain.Author
	if err := c.doJSON(http.MethodPost, "/api/authors", nil, payload, &author); err != nil {
		return domain.Author{}, err
	}
	return author, nil
}

func (c *Client) Publishers() ([]domain.Publisher, error) {
	var publishers []domain.Publisher
	if err := c.doJSON(http.MethodGet, "/api/publishers", nil, nil, &publishers); err != nil {
		return nil, err
	}
	return publishers, nil
}

func (c *Client) CreatePublisher(name string) (domain.Publisher, error) {
	payload := map[string]string{"name": name}
	var publisher domain.Publisher
	if err := c.doJSON(http.MethodPost, "/api/publishers", nil, payload, &publisher); err != nil {
		return domain.Publisher{}, err
	}
	return publisher, nil
}

func (c *Client) Categories() ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.doJSON(http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Libraries() ([]domain.Library, error) {
	var libraries []domain.Library
	if err := c.doJSON(http.MethodGet, "/api/libraries", nil, nil, &libraries); err != nil {
		return nil, err
	}
	return libraries, nil
}
