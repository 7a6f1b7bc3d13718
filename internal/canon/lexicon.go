package canon

import (
	"regexp"
	"strings"
)

// lexiconEntry maps a canonical label to the patterns that identify it.
// Exact holds short or ambiguous spellings that only count when they are the
// whole token ("c", "r", "go").
type lexiconEntry struct {
	Label   string
	Pattern *regexp.Regexp
	Exact   []string
}

func entry(label, pattern string, exact ...string) lexiconEntry {
	e := lexiconEntry{Label: label, Exact: exact}
	if pattern != "" {
		e.Pattern = regexp.MustCompile(`(?i)` + pattern)
	}
	return e
}

// lexicon is ordered: the first matching entry wins, so more specific labels
// precede the ones they contain ("React Native" before "React").
var lexicon = []lexiconEntry{
	entry("Python", `\bpython\b`),
	entry("JavaScript", `\bjavascript\b|\bjs\b|\becmascript\b`),
	entry("Java", `\bjava\b`),
	entry("TypeScript", `\btypescript\b|\bts\b`),
	entry("C#", `(?:^|[^a-z0-9])c\s*#|\bc[-\s]?sharp\b`),
	entry("C++", `(?:^|[^a-z0-9])c\+\+|\bcpp\b`),
	entry("C", ``, "c"),
	entry("Go", `\bgolang\b|\bgo\s+lang\b`, "go"),
	entry("Rust", `\brust\b`),
	entry("Ruby on Rails", `\bruby\s+on\s+rails\b|\brails\b|\bror\b`),
	entry("Ruby", `\bruby\b`),
	entry("PHP", `\bphp\b`),
	entry("Laravel", `\blaravel\b`),
	entry("Kotlin", `\bkotlin\b`),
	entry("Swift", `\bswift\b`),
	entry("Scala", `\bscala\b`),
	entry("R", ``, "r"),
	entry("MATLAB", `\bmatlab\b`),
	entry("ASP.NET", `\basp\.?net(?:\s*core)?\b`),
	entry(".NET", `(?:^|\s)\.net(?:\s*core)?\b|\bdotnet\b`, "net", "net core"),
	entry("Node.js", `\bnode(?:\.?js)?\b`),
	entry("React Native", `\breact\s+native\b`),
	entry("React", `\breact(?:\.js|js)?\b`),
	entry("Redux", `\bredux\b`),
	entry("Next.js", `\bnext\.?js\b`, "next"),
	entry("Vue", `\bvue(?:\.js|js)?\b`),
	entry("Angular", `\bangular(?:js)?\b`),
	entry("Svelte", `\bsvelte\b`),
	entry("jQuery", `\bjquery\b`),
	entry("Express", `\bexpress(?:\.js)?\b`),
	entry("Django", `\bdjango\b`),
	entry("Flask", `\bflask\b`),
	entry("FastAPI", `\bfastapi\b`),
	entry("Spring Boot", `\bspring\s*boot\b`),
	entry("Spring", `\bspring\b`),
	entry("SQL Server", `\bsql\s*server\b|\bmssql\b|\bt-sql\b`),
	entry("PostgreSQL", `\bpostgres(?:ql)?\b`),
	entry("MySQL", `\bmysql\b`),
	entry("SQLite", `\bsqlite\b`),
	entry("NoSQL", `\bnosql\b`),
	entry("SQL", `\bsql\b`),
	entry("MongoDB", `\bmongo(?:db)?\b`),
	entry("Redis", `\bredis\b`),
	entry("DynamoDB", `\bdynamo(?:db)?\b`),
	entry("Oracle", `\boracle\b`),
	entry("Snowflake", `\bsnowflake\b`),
	entry("Elasticsearch", `\belastic(?:search)?\b`),
	entry("RabbitMQ", `\brabbitmq\b`),
	entry("Kafka", `\bkafka\b`),
	entry("Spark", `\b(?:apache\s+)?spark\b|\bpyspark\b`),
	entry("Airflow", `\bairflow\b`),
	entry("Hadoop", `\bhadoop\b`),
	entry("GraphQL", `\bgraphql\b`),
	entry("REST", `\brest(?:ful)?\b`),
	entry("gRPC", `\bgrpc\b`),
	entry("HTML", `\bhtml5?\b|\bhtm\b`),
	entry("CSS", `\bcss3?\b`),
	entry("Tailwind", `\btailwind(?:\s*css)?\b`),
	entry("Bootstrap", `\bbootstrap\b`),
	entry("Sass", `\bs[ac]ss\b`),
	entry("GitHub Actions", `\bgithub\s+actions\b`),
	entry("GitHub", `\bgithub\b`),
	entry("GitLab", `\bgitlab\b`),
	entry("Git", `\bgit\b`),
	entry("Jenkins", `\bjenkins\b`),
	entry("Linux", `\blinux\b|\bubuntu\b`),
	entry("Docker", `\bdocker\b`),
	entry("Kubernetes", `\bkubernetes\b|\bk8s\b`),
	entry("AWS", `\baws\b|\bamazon\s+web\s+services\b`),
	entry("Azure", `\bazure\b`),
	entry("GCP", `\bgcp\b|\bgoogle\s+cloud(?:\s+platform)?\b`),
	entry("Firebase", `\bfirebase\b`),
	entry("CI/CD", `\bci\s*/?\s*cd\b|\bcontinuous\s+(?:integration|delivery|deployment)\b`),
	entry("Terraform", `\bterraform\b`),
	entry("Ansible", `\bansible\b`),
	entry("Nginx", `\bnginx\b`),
	entry("Pandas", `\bpandas\b`),
	entry("NumPy", `\bnumpy\b`),
	entry("Scikit-learn", `\bscikit[-\s]?learn\b|\bsklearn\b`),
	entry("PyTorch", `\bpytorch\b`),
	entry("TensorFlow", `\btensorflow\b`),
	entry("Keras", `\bkeras\b`),
	entry("OpenCV", `\bopencv\b`),
	entry("Jupyter", `\bjupyter\b`),
	entry("Tableau", `\btableau\b`),
	entry("Power BI", `\bpower\s*bi\b`),
	entry("Excel", `\b(?:ms\s+|microsoft\s+)?excel\b`),
	entry("Jira", `\bjira\b`),
	entry("Confluence", `\bconfluence\b`),
	entry("Figma", `\bfigma\b`),
	entry("Postman", `\bpostman\b`),
	entry("Selenium", `\bselenium\b`),
	entry("Jest", `\bjest\b`),
	entry("Pytest", `\bpytest\b`),
	entry("Bash", `\bbash\b`),
	entry("PowerShell", `\bpowershell\b`, "ps"),
	entry("Shell", `\bshell(?:\s+script(?:ing)?)?\b`, "sh"),
	entry("VS Code", `\bvs\s*code\b|\bvisual\s+studio\s+code\b`),
	entry("Visual Studio", `\bvisual\s+studio\b`),
	entry("IIS", `\biis\b`),
	entry("Tomcat", `\btomcat\b`),
	entry("Unity", `\bunity(?:3d)?\b`),
	entry("SBERT", `\bsbert\b`),
	entry("NLP", `\bnlp\b|\bnatural\s+language\s+processing\b`),
}

// variants are exact spellings folded onto a canonical label
var variants = map[string]string{
	"golanglang": "Go",
	"reactjs":    "React",
	"react.js":   "React",
	"vuejs":      "Vue",
	"vue.js":     "Vue",
	"nodejs":     "Node.js",
	"node.js":    "Node.js",
	"k8s":        "Kubernetes",
	"postgres":   "PostgreSQL",
	"js":         "JavaScript",
	"ts":         "TypeScript",
}

// lookupLexicon resolves a cleaned token against the built-in lexicon
func lookupLexicon(token string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(token))
	if lower == "" {
		return "", false
	}
	if label, ok := variants[lower]; ok {
		return label, true
	}
	for _, e := range lexicon {
		for _, x := range e.Exact {
			if lower == x {
				return e.Label, true
			}
		}
		if e.Pattern != nil && e.Pattern.MatchString(lower) {
			return e.Label, true
		}
	}
	return "", false
}

// LexiconLabels returns every canonical label in lexicon order
func LexiconLabels() []string {
	out := make([]string, 0, len(lexicon))
	for _, e := range lexicon {
		out = append(out, e.Label)
	}
	return out
}
