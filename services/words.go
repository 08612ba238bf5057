// services/words.go
package services

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"word-league-system/models"

	"github.com/gosimple/unidecode"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordSource supplies secret words of a given length.
type WordSource interface {
	RandomWord(letters int) (string, error)
}

// NormalizeWord folds a word or guess to lower-case ASCII ("Crème" -> "creme"). Casers are
// not goroutine safe, so one is built per call.
func NormalizeWord(w string) string {
	return cases.Lower(language.Und).String(unidecode.Unidecode(strings.TrimSpace(w)))
}

// WordList is the curated in-memory word list, bucketed by length. It is safe for
// concurrent use and can be swapped wholesale by the sync worker.
type WordList struct {
	mu       sync.RWMutex
	byLength map[int][]string
	size     int
	intn     func(n int) int
}

// NewWordList builds a list from raw entries. Entries that are not purely alphabetic after
// normalisation are dropped, duplicates are kept once.
func NewWordList(words []string) *WordList {
	wl := &WordList{intn: rand.Intn}
	wl.Replace(words)
	return wl
}

// Replace swaps the whole list and returns the number of usable words.
func (wl *WordList) Replace(words []string) int {
	byLength := make(map[int][]string)
	seen := make(map[string]struct{}, len(words))
	for _, raw := range words {
		w := NormalizeWord(raw)
		if !isWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		n := utf8.RuneCountInString(w)
		byLength[n] = append(byLength[n], w)
	}

	wl.mu.Lock()
	defer wl.mu.Unlock()
	wl.byLength = byLength
	wl.size = len(seen)
	return wl.size
}

// Len returns the number of usable words.
func (wl *WordList) Len() int {
	wl.mu.RLock()
	defer wl.mu.RUnlock()
	return wl.size
}

// Count returns how many words have exactly letters letters.
func (wl *WordList) Count(letters int) int {
	wl.mu.RLock()
	defer wl.mu.RUnlock()
	return len(wl.byLength[letters])
}

// RandomWord draws a word with exactly letters letters.
func (wl *WordList) RandomWord(letters int) (string, error) {
	wl.mu.RLock()
	defer wl.mu.RUnlock()
	candidates := wl.byLength[letters]
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w with %d letters", models.ErrNoCandidateWord, letters)
	}
	return candidates[wl.intn(len(candidates))], nil
}

func isWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ReadWordList reads one word per line. Blank lines and lines starting with '#' are
// skipped; on CSV-like lines only the first field is taken.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexAny(line, ",;\t"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// XLSXOptions says where the words live inside a workbook.
type XLSXOptions struct {
	SheetName string // empty means the first sheet
	Column    string // column letter, default "A"
	StartRow  int    // 1-based, default 1
}

// ReadWordListXLSX reads words from one column of a spreadsheet stream.
func ReadWordListXLSX(r io.Reader, opts XLSXOptions) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, opts)
}

// LoadWordListXLSX reads words from one column of a workbook on disk.
func LoadWordListXLSX(path string, opts XLSXOptions) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(f, opts)
}

func readWorkbook(f *excelize.File, opts XLSXOptions) ([]string, error) {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	column := opts.Column
	if column == "" {
		column = "A"
	}
	colIdx, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return nil, fmt.Errorf("invalid word column %q: %w", column, err)
	}
	startRow := opts.StartRow
	if startRow < 1 {
		startRow = 1
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows of %q: %w", sheet, err)
	}

	var words []string
	for i, row := range rows {
		if i < startRow-1 || colIdx > len(row) {
			continue
		}
		if cell := strings.TrimSpace(row[colIdx-1]); cell != "" {
			words = append(words, cell)
		}
	}
	return words, nil
}

// ParseWordList decodes a word list by file name: .xlsx workbooks, anything else as text.
func ParseWordList(name string, data []byte) ([]string, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return ReadWordListXLSX(bytes.NewReader(data), XLSXOptions{})
	}
	return ReadWordList(bytes.NewReader(data))
}

// LoadWordListFile reads a word list from disk, picking the format by extension.
func LoadWordListFile(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadWordListXLSX(path, XLSXOptions{})
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer f.Close()
	return ReadWordList(f)
}
