// Package voc implements RDF namespace (vocabulary) bookkeeping: a global
// prefix registry seeded by the voc/rdf, voc/rdfs, voc/owl, and voc/xsd
// sub-packages' init() functions, and the per-serialization Table the
// writers use to shorten IRIs into QNames (§4.4).
package voc

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/idna"
)

// Namespace is an RDF namespace (vocabulary): a prefix bound to a full IRI.
type Namespace struct {
	Full   string
	Prefix string
}

type ByFullName []Namespace

func (o ByFullName) Len() int           { return len(o) }
func (o ByFullName) Less(i, j int) bool { return o[i].Full < o[j].Full }
func (o ByFullName) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }

// Namespaces is a set of registered namespaces, kept by the global registry
// below. It backs the package-level ShortIRI/FullIRI debug helpers; the
// writers resolve QNames through Table, not this.
type Namespaces struct {
	Safe     bool // if set, assume no locking is required
	mu       sync.RWMutex
	prefixes map[string]string
}

// Register adds namespace to registered list.
func (p *Namespaces) Register(ns Namespace) {
	if !p.Safe {
		p.mu.Lock()
		defer p.mu.Unlock()
	}
	if p.prefixes == nil {
		p.prefixes = make(map[string]string)
	}
	p.prefixes[ns.Prefix] = ns.Full
}

// ShortIRI replaces a base IRI of a known vocabulary with it's prefix,
// preferring the longest matching namespace.
//
//	ShortIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type") // returns "rdf:type"
func (p *Namespaces) ShortIRI(iri string) string {
	if !p.Safe {
		p.mu.RLock()
		defer p.mu.RUnlock()
	}
	bestNS, bestPref := "", ""
	for pref, ns := range p.prefixes {
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			bestNS, bestPref = ns, pref
		}
	}
	if bestNS == "" {
		return iri
	}
	return bestPref + ":" + iri[len(bestNS):]
}

// FullIRI replaces known prefix in IRI with it's full vocabulary IRI.
//
//	FullIRI("rdf:type") // returns "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
func (p *Namespaces) FullIRI(iri string) string {
	pref, rest, ok := strings.Cut(iri, ":")
	if !ok {
		return iri
	}
	if !p.Safe {
		p.mu.RLock()
		defer p.mu.RUnlock()
	}
	ns, ok := p.prefixes[pref]
	if !ok {
		return iri
	}
	return ns + rest
}

// List enumerates all registered namespace pairs.
func (p *Namespaces) List() (out []Namespace) {
	if !p.Safe {
		p.mu.RLock()
		defer p.mu.RUnlock()
	}
	out = make([]Namespace, 0, len(p.prefixes))
	for pref, ns := range p.prefixes {
		out = append(out, Namespace{Prefix: pref, Full: ns})
	}
	return
}

var global Namespaces

// Register adds namespace to a global registered list.
func Register(ns Namespace) {
	global.Register(ns)
}

// RegisterPrefix globally associates a given prefix with a base vocabulary
// IRI. voc/rdf, voc/rdfs, voc/owl, and voc/xsd each call this from their own
// init(), which is why blank-importing any of them is enough to seed a new
// Table's fallback namespaces.
func RegisterPrefix(pref string, ns string) {
	Register(Namespace{Prefix: pref, Full: ns})
}

// ShortIRI replaces a base IRI of a known vocabulary with it's prefix.
func ShortIRI(iri string) string { return global.ShortIRI(iri) }

// FullIRI replaces known prefix in IRI with it's full vocabulary IRI.
func FullIRI(iri string) string { return global.FullIRI(iri) }

// List enumerates all registered namespace pairs.
func List() []Namespace { return global.List() }

// Table is a per-serialization namespace table (§3 "Namespace tables", §4.4
// "QName resolution"): it holds the prefixes declared by the input graph
// plus any generated along the way, resolves IRIs to QNames, and records
// which prefixes actually got used so a writer only emits declarations it
// exercised.
//
// A Table is not safe for concurrent use; each Base writer owns exactly one.
type Table struct {
	byPrefix  map[string]string // every prefix->namespace available for lookup
	used      map[string]string // subset of byPrefix actually resolved against
	generated map[string]bool   // prefixes this Table invented itself
	nextGen   int
}

// NewTable builds a Table seeded from declared — the graph's own §3 prefix
// declarations — falling back to the global vocabulary registry for any
// namespace declared does not cover.
func NewTable(declared map[string]string) *Table {
	t := &Table{
		byPrefix:  make(map[string]string, len(declared)+8),
		used:      make(map[string]string),
		generated: make(map[string]bool),
		nextGen:   1,
	}
	for pref, ns := range declared {
		t.byPrefix[pref] = ns
	}
	for _, ns := range global.List() {
		if _, ok := t.byPrefix[ns.Prefix]; !ok {
			t.byPrefix[ns.Prefix] = ns.Full
		}
	}
	return t
}

// Split divides iri at its last '#', '/', or ':' into a namespace and local
// name, matching quad.IRI.Namespace/LocalName's rule. ok is false when iri
// has none of those separators.
func Split(iri string) (namespace, local string, ok bool) {
	cut := -1
	for i, r := range iri {
		switch r {
		case '#', '/', ':':
			cut = i + 1
		}
	}
	if cut < 0 {
		return "", iri, false
	}
	return iri[:cut], iri[cut:], true
}

// QName resolves iri to a prefix:local pair. It looks for the declared
// namespace that is both a prefix of iri and exactly iri's §4.4 namespace
// split; when several declared prefixes share that namespace, ties break
// by prefix length then lexicographic order (§3). local must also be a
// valid XML NCName (§4.7) for the QName to be usable; ok is false
// otherwise. When no declared prefix matches and allowGenerate is set, it
// reuses or synthesizes a "ns1", "ns2", ... prefix for the namespace, in
// first-use order.
func (t *Table) QName(iri string, allowGenerate bool) (prefix, local string, ok bool) {
	ns, loc, split := Split(iri)
	if !split || !isNCName(loc) {
		return "", "", false
	}

	bestPrefix, bestNS := "", ""
	for pref, full := range t.byPrefix {
		if full == "" || full != ns {
			continue
		}
		if bestNS == "" || shorterOrEarlier(pref, bestPrefix) {
			bestPrefix, bestNS = pref, full
		}
	}
	if bestNS != "" {
		t.RegisterUsed(bestPrefix, bestNS)
		return bestPrefix, loc, true
	}
	if !allowGenerate {
		return "", "", false
	}
	for pref, full := range t.used {
		if full == ns {
			return pref, loc, true
		}
	}
	return t.generatePrefix(ns), loc, true
}

// shorterOrEarlier reports whether a should replace b as the preferred
// prefix for a shared namespace: shorter wins, then lexicographic order
// (§3).
func shorterOrEarlier(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func (t *Table) generatePrefix(ns string) string {
	for {
		pref := "ns" + itoa(t.nextGen)
		t.nextGen++
		if _, taken := t.byPrefix[pref]; taken {
			continue
		}
		if _, taken := t.used[pref]; taken {
			continue
		}
		t.byPrefix[pref] = ns
		t.generated[pref] = true
		t.RegisterUsed(pref, ns)
		return pref
	}
}

func itoa(k int) string {
	if k == 0 {
		return "0"
	}
	var digits []byte
	for k > 0 {
		digits = append([]byte{byte('0' + k%10)}, digits...)
		k /= 10
	}
	return string(digits)
}

// RegisterUsed records that prefix/namespace was resolved against during
// this serialization, so it appears in UsedPrefixes. QName calls this
// itself; it is exported so a writer can force a declaration it needs
// regardless of whether QName ever resolved it (e.g. RDF/XML's default
// "rdf" namespace).
func (t *Table) RegisterUsed(prefix, namespace string) {
	t.used[prefix] = namespace
}

// UsedPrefixes returns the prefixes RegisterUsed/QName actually resolved
// against, sorted by prefix, for emission as xmlns/@prefix declarations.
func (t *Table) UsedPrefixes() []Namespace {
	out := make([]Namespace, 0, len(t.used))
	for pref, ns := range t.used {
		out = append(out, Namespace{Prefix: pref, Full: ns})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// ValidateAuthority checks the host component of a hierarchical IRI
// (scheme://host/...) with IDNA ToASCII, catching a malformed
// internationalized domain name before QName/base-IRI resolution treats the
// IRI as well-formed (§4.3 "base IRI"). IRIs without a "//" authority part
// (urn:, mailto:, ...) are not checked and return nil.
func ValidateAuthority(iri string) error {
	rest, ok := cutScheme(iri)
	if !ok || !strings.HasPrefix(rest, "//") {
		return nil
	}
	rest = rest[2:]
	authority := rest
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		authority = rest[:end]
	}
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		authority = authority[at+1:]
	}
	host := authority
	if colon := strings.LastIndexByte(authority, ':'); colon >= 0 {
		host = authority[:colon]
	}
	if host == "" {
		return nil
	}
	_, err := idna.Lookup.ToASCII(host)
	return err
}

func cutScheme(iri string) (rest string, ok bool) {
	i := strings.IndexByte(iri, ':')
	if i <= 0 {
		return "", false
	}
	scheme := iri[:i]
	for j, r := range scheme {
		switch {
		case j == 0 && !unicode.IsLetter(r):
			return "", false
		case j > 0 && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '-' && r != '.':
			return "", false
		}
	}
	return iri[i+1:], true
}

// isNCName reports whether s is a valid XML NCName: non-empty, no ':', and
// a first character that is a letter or '_' — the constraint RDF/XML QName
// element and attribute names must satisfy (§4.7).
func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == ':' {
			return false
		}
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
