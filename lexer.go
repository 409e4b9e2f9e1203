package arbor

// TokenKind is the lexical class of a Token.
type TokenKind uint8

const (
	TokenCall  TokenKind = iota // letter immediately followed by "(args)"
	TokenOpen                   // "["
	TokenClose                  // "]"
	TokenPlus                   // "+"
	TokenMinus                  // "-"
)

// Token is a lexical token of an L-system word.
type Token struct {
	Kind   TokenKind
	Letter byte     // TokenCall only
	Args   []string // TokenCall only; raw comma-separated fields
	Pos    int      // byte offset in the word
}

// Lexer splits a word into tokens. The grammar is
//
//	word  = { call | "[" | "]" | "+" | "-" | junk }
//	call  = letter "(" { digit | "." | "," | "+" | "-" | " " } ")"
//
// Anything that is not a token start, including a letter without a
// well-formed argument list, is skipped one byte at a time.
type Lexer struct {
	src    string
	start  int
	cur    int
	tokens []Token
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() byte {
	b := l.src[l.cur]
	l.cur++
	return b
}

func (l *Lexer) emit(t Token) {
	t.Pos = l.start
	l.tokens = append(l.tokens, t)
}

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isArgByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == ',' || b == '+' || b == '-' ||
		b == ' ' || b == 'e' || b == 'E'
}

// scanCall tries to read "(args)" after a letter at l.start. On failure the
// cursor is left just past the letter.
func (l *Lexer) scanCall(letter byte) bool {
	if b, ok := l.peek(); !ok || b != '(' {
		return false
	}
	open := l.cur
	l.cur++
	for !l.isAtEnd() {
		b := l.advance()
		if b == ')' {
			l.emit(Token{Kind: TokenCall, Letter: letter, Args: splitArgs(l.src[open+1 : l.cur-1])})
			return true
		}
		if !isArgByte(b) {
			break
		}
	}
	l.cur = open
	return false
}

func splitArgs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[last:i])
			last = i + 1
		}
	}
	return append(out, s[last:])
}

func (l *Lexer) scanToken() {
	l.start = l.cur
	b := l.advance()
	switch b {
	case '[':
		l.emit(Token{Kind: TokenOpen})
	case ']':
		l.emit(Token{Kind: TokenClose})
	case '+':
		l.emit(Token{Kind: TokenPlus})
	case '-':
		l.emit(Token{Kind: TokenMinus})
	default:
		if isLetter(b) {
			l.scanCall(b)
		}
	}
}

// Scan tokenizes the whole word. Scanning never fails.
func (l *Lexer) Scan() []Token {
	for !l.isAtEnd() {
		l.scanToken()
	}
	return l.tokens
}
