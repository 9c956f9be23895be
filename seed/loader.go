package seed

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/bookshelf/book"
	"gopkg.in/yaml.v3"
)

/* Loader reads a seed catalog from a YAML file
 * Shelves are kept in file order, with a name index for lookups
 */

// Config represents the structure of the seed file
type Config struct {
	Users []UserConfig `yaml:"users"`
}

// UserConfig represents a single user in the YAML file
type UserConfig struct {
	Name  string       `yaml:"name"`
	Books []BookConfig `yaml:"books"`
}

// BookConfig represents a book on a user's shelf
type BookConfig struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Genre    string `yaml:"genre"`
	CoverURL string `yaml:"cover_url"`
	Read     bool   `yaml:"read"`   // Optional: read without a rating
	Rating   int    `yaml:"rating"` // Default: 0 (unrated)
}

// Loader holds the loaded shelves
type Loader struct {
	shelves []*Shelf
	byName  map[string]*Shelf
}

// NewLoader creates a new seed loader
func NewLoader() *Loader {
	return &Loader{
		byName: make(map[string]*Shelf),
	}
}

// Load reads and parses a seed file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	return l.Parse(data)
}

// Parse validates a seed catalog already in memory
func (l *Loader) Parse(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing seed YAML: %w", err)
	}

	shelves := make([]*Shelf, 0, len(config.Users))
	byName := make(map[string]*Shelf, len(config.Users))
	for _, uc := range config.Users {
		shelf := &Shelf{
			Name:  strings.TrimSpace(uc.Name),
			Books: make([]Entry, 0, len(uc.Books)),
		}
		for _, bc := range uc.Books {
			shelf.Books = append(shelf.Books, Entry{
				Title:    strings.TrimSpace(bc.Title),
				Author:   strings.TrimSpace(bc.Author),
				Genre:    strings.TrimSpace(bc.Genre),
				CoverURL: strings.TrimSpace(bc.CoverURL),
				Read:     bc.Read || bc.Rating > 0,
				Rating:   book.Rating(bc.Rating),
			})
		}

		if err := shelf.Validate(); err != nil {
			return fmt.Errorf("validating user: %w", err)
		}
		if _, dup := byName[shelf.Name]; dup {
			return fmt.Errorf("validating user: duplicate name %s", shelf.Name)
		}

		shelves = append(shelves, shelf)
		byName[shelf.Name] = shelf
	}

	l.shelves = shelves
	l.byName = byName
	return nil
}

// Get retrieves a shelf by user name
func (l *Loader) Get(name string) (*Shelf, error) {
	shelf, exists := l.byName[name]
	if !exists {
		return nil, fmt.Errorf("user not found in seed: %s", name)
	}
	return shelf, nil
}

// List returns all loaded shelves in file order
func (l *Loader) List() []*Shelf {
	out := make([]*Shelf, len(l.shelves))
	copy(out, l.shelves)
	return out
}

// Exists checks if a user name is in the seed
func (l *Loader) Exists(name string) bool {
	_, exists := l.byName[name]
	return exists
}

// BookCount returns the number of books across every shelf
func (l *Loader) BookCount() int {
	n := 0
	for _, s := range l.shelves {
		n += len(s.Books)
	}
	return n
}
