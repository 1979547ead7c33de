package repl

import (
	"sort"
	"strings"
	"unicode"
)

// Command names offered for completion, besides the local ones.
var serverCommands = []string{
	"APPEND", "AUTH", "BGREWRITEAOF", "BGSAVE", "BITCOUNT", "BITPOS",
	"BLPOP", "BRPOP", "CLIENT", "CLUSTER", "COMMAND", "CONFIG", "COPY",
	"DBSIZE", "DECR", "DECRBY", "DEL", "DISCARD", "DUMP", "ECHO", "EVAL",
	"EVALSHA", "EXEC", "EXISTS", "EXPIRE", "EXPIREAT", "FLUSHALL", "FLUSHDB",
	"GET", "GETDEL", "GETEX", "GETRANGE", "GETSET", "HDEL", "HELLO",
	"HEXISTS", "HGET", "HGETALL", "HINCRBY", "HKEYS", "HLEN", "HMGET",
	"HMSET", "HSCAN", "HSET", "HSETNX", "HVALS", "INCR", "INCRBY",
	"INCRBYFLOAT", "INFO", "KEYS", "LASTSAVE", "LINDEX", "LINSERT", "LLEN",
	"LPOP", "LPUSH", "LRANGE", "LREM", "LSET", "LTRIM", "MEMORY", "MGET",
	"MONITOR", "MOVE", "MSET", "MSETNX", "MULTI", "OBJECT", "PERSIST",
	"PEXPIRE", "PING", "PSETEX", "PSUBSCRIBE", "PTTL", "PUBLISH", "RANDOMKEY",
	"RENAME", "RENAMENX", "RPOP", "RPUSH", "SADD", "SAVE", "SCAN", "SCARD",
	"SCRIPT", "SDIFF", "SELECT", "SET", "SETEX", "SETNX", "SETRANGE",
	"SINTER", "SISMEMBER", "SLOWLOG", "SMEMBERS", "SMOVE", "SPOP",
	"SRANDMEMBER", "SREM", "SSCAN", "STRLEN", "SUBSCRIBE", "SUNION",
	"TIME", "TOUCH", "TTL", "TYPE", "UNLINK", "UNWATCH", "WATCH", "XADD",
	"XLEN", "XRANGE", "XREAD", "ZADD", "ZCARD", "ZCOUNT", "ZINCRBY",
	"ZRANGE", "ZRANGEBYSCORE", "ZRANK", "ZREM", "ZREVRANGE", "ZSCORE",
}

// Commands handled by the REPL itself.
var localCommands = []string{"CONNECT", "EXIT", "QUIT"}

// Completer provides command-name completion for the REPL. It implements
// readline.AutoCompleter.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	commands := make([]string, 0, len(serverCommands)+len(localCommands))
	commands = append(commands, serverCommands...)
	commands = append(commands, localCommands...)
	sort.Strings(commands)
	return &Completer{commands: commands}
}

// Complete returns the command names starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	upper := strings.ToUpper(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, upper) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Do completes the first word of line. Candidates are the remaining
// suffixes, in lower case unless the typed prefix has an upper-case letter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	head := strings.TrimLeftFunc(string(line[:pos]), unicode.IsSpace)
	if strings.ContainsFunc(head, unicode.IsSpace) {
		return nil, 0
	}

	lower := strings.ToLower(head) == head
	var out [][]rune
	for _, cmd := range c.Complete(head) {
		suffix := cmd[len(head):]
		if lower {
			suffix = strings.ToLower(suffix)
		}
		out = append(out, []rune(suffix+" "))
	}
	return out, len([]rune(head))
}
