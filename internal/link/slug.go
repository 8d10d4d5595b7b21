package link

import "github.com/jaevor/go-nanoid"

// SlugAlphabet is the character set for generated slugs. Visually
// confusable characters (0/O/o, 1/l/I) are excluded.
const SlugAlphabet = "23456789abcdefghijkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

// DefaultSlugLength is long enough that collisions are rare; the store's
// unique constraint catches the rest.
const DefaultSlugLength = 7

// Generator produces a URL-safe slug candidate. It does not guarantee
// global uniqueness.
type Generator func() string

// NewGenerator returns a slug generator over SlugAlphabet.
func NewGenerator(length int) (Generator, error) {
	if length <= 0 {
		length = DefaultSlugLength
	}

	gen, err := nanoid.CustomASCII(SlugAlphabet, length)
	if err != nil {
		return nil, err
	}

	return Generator(gen), nil
}
