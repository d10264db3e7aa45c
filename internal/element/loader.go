package element

import (
	"bufio"
	"image/color"
	"io"
	"log"
	"strconv"
	"strings"
)

// block is the raw key/value content gathered for one "[<id>]" section
// before it is validated and turned into an Element.
type block struct {
	idLine int
	id     uint16
	idOK   bool
	values map[string]string
}

// ParseElements reads the elements.data block format and returns a
// read-only Registry. Malformed blocks are logged and discarded rather
// than failing the whole load — only an unreadable stream (handled by
// LoadElements) is fatal.
func ParseElements(r io.Reader) *Registry {
	blocks := scanBlocks(r)

	elements := make([]Element, 0, len(blocks))
	seen := make(map[uint16]bool, len(blocks))

	for _, b := range blocks {
		if !b.idOK || b.id < FirstUserID {
			log.Printf("element loader: line %d: invalid element id, discarding block", b.idLine)
			continue
		}
		if seen[b.id] {
			log.Printf("element loader: line %d: duplicate element id %d, discarding block", b.idLine, b.id)
			continue
		}

		e, err := buildElement(b)
		if err != nil {
			log.Printf("element loader: line %d: element %d: %v, discarding block", b.idLine, b.id, err)
			continue
		}

		seen[b.id] = true
		elements = append(elements, e)
	}

	return NewRegistry(elements)
}

// scanBlocks performs the line-oriented split into "[<id>]" sections,
// ignoring blank lines and "#" comments, without yet validating contents.
func scanBlocks(r io.Reader) []block {
	var blocks []block
	var cur *block

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if cur != nil {
				blocks = append(blocks, *cur)
			}
			idStr := line[1 : len(line)-1]
			id, err := strconv.ParseUint(idStr, 10, 16)
			cur = &block{idLine: lineNo, values: make(map[string]string)}
			if err == nil {
				cur.id = uint16(id)
				cur.idOK = true
			}
			continue
		}

		if cur == nil {
			// key:value lines before any block header are not part of any
			// element; ignore them.
			continue
		}

		key, value, ok := splitKeyValue(line)
		if ok {
			cur.values[key] = value
		}
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}
	return blocks
}

func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	return key, value, key != ""
}

var requiredElementKeys = []string{
	"name", "phase", "category",
	"base_color", "blend_color", "highlight_color",
	"is_movable", "density", "cohesion", "repose_angle",
}

func buildElement(b block) (Element, error) {
	for _, k := range requiredElementKeys {
		if _, ok := b.values[k]; !ok {
			return Element{}, errMissingField(k)
		}
	}

	cat, err := parseCategory(b.values["category"])
	if err != nil {
		return Element{}, err
	}
	phase, err := parsePhase(b.values["phase"])
	if err != nil {
		return Element{}, err
	}
	base, err := parseHexColor(b.values["base_color"])
	if err != nil {
		return Element{}, err
	}
	blend, err := parseHexColor(b.values["blend_color"])
	if err != nil {
		return Element{}, err
	}
	highlight, err := parseHexColor(b.values["highlight_color"])
	if err != nil {
		return Element{}, err
	}
	movable, err := strconv.ParseBool(b.values["is_movable"])
	if err != nil {
		return Element{}, err
	}
	density, err := strconv.ParseFloat(b.values["density"], 32)
	if err != nil {
		return Element{}, err
	}
	cohesion, err := strconv.ParseUint(b.values["cohesion"], 10, 8)
	if err != nil {
		return Element{}, err
	}
	repose, err := strconv.Atoi(b.values["repose_angle"])
	if err != nil {
		return Element{}, err
	}

	return NewElement(b.id, b.values["name"], cat, phase, movable, float32(density), base, blend, highlight, uint8(cohesion), repose), nil
}

func parseCategory(s string) (Category, error) {
	switch s {
	case "solids":
		return Solid, nil
	case "liquids":
		return Liquid, nil
	case "gases":
		return Gas, nil
	case "sands":
		return Sand, nil
	case "electronics":
		return Electronic, nil
	default:
		return 0, errInvalidValue("category", s)
	}
}

func parsePhase(s string) (Phase, error) {
	switch s {
	case "solid":
		return SolidPhase, nil
	case "liquid":
		return LiquidPhase, nil
	case "gas":
		return GasPhase, nil
	case "plasma":
		return PlasmaPhase, nil
	default:
		return 0, errInvalidValue("phase", s)
	}
}

// parseHexColor parses "#RRGGBB" or "#RGB", defaulting alpha to 0xFF.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	expand := func(c byte) (byte, byte) { return c, c }

	var r, g, b byte
	switch len(s) {
	case 3:
		hi, lo := expand(s[0])
		rv, err := strconv.ParseUint(string(hi)+string(lo), 16, 8)
		if err != nil {
			return color.RGBA{}, errInvalidValue("color", s)
		}
		r = byte(rv)
		hi, lo = expand(s[1])
		gv, err := strconv.ParseUint(string(hi)+string(lo), 16, 8)
		if err != nil {
			return color.RGBA{}, errInvalidValue("color", s)
		}
		g = byte(gv)
		hi, lo = expand(s[2])
		bv, err := strconv.ParseUint(string(hi)+string(lo), 16, 8)
		if err != nil {
			return color.RGBA{}, errInvalidValue("color", s)
		}
		b = byte(bv)
	case 6, 8:
		rv, err := strconv.ParseUint(s[0:2], 16, 8)
		if err != nil {
			return color.RGBA{}, errInvalidValue("color", s)
		}
		gv, err := strconv.ParseUint(s[2:4], 16, 8)
		if err != nil {
			return color.RGBA{}, errInvalidValue("color", s)
		}
		bv, err := strconv.ParseUint(s[4:6], 16, 8)
		if err != nil {
			return color.RGBA{}, errInvalidValue("color", s)
		}
		r, g, b = byte(rv), byte(gv), byte(bv)
	default:
		return color.RGBA{}, errInvalidValue("color", s)
	}

	a := byte(0xFF)
	if len(s) == 8 {
		av, err := strconv.ParseUint(s[6:8], 16, 8)
		if err != nil {
			return color.RGBA{}, errInvalidValue("color", s)
		}
		a = byte(av)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

type fieldError struct {
	kind, field, value string
}

func (e *fieldError) Error() string {
	if e.kind == "missing" {
		return "missing required field " + strconv.Quote(e.field)
	}
	return "invalid value " + strconv.Quote(e.value) + " for field " + strconv.Quote(e.field)
}

func errMissingField(field string) error {
	return &fieldError{kind: "missing", field: field}
}

func errInvalidValue(field, value string) error {
	return &fieldError{kind: "invalid", field: field, value: value}
}
