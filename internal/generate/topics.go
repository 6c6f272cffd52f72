package generate

import (
	"fmt"
	"strings"
)

// The topic space is a very large implicit combinatorial space: a
// mixed-radix mapping turns an integer index into a deterministic
// topic string without materializing the space. Odd indexes draw from
// a smaller stdlib-module template space to diversify.

var coreConcepts = []string{
	"pattern matching (match/case)",
	"structural pattern matching guards",
	"f-strings formalization (PEP 701)",
	"type parameter syntax (PEP 695)",
	"buffer protocol (PEP 688)",
	"exception groups (PEP 654)",
	"typing.Annotated and metadata",
	"typing.Self and TypeVarTuple",
	"dataclasses and slots",
	"frozen dataclasses and immutability",
	"context managers and contextlib",
	"async context managers and AsyncExitStack",
	"iterators, generators, and yield from",
	"coroutines and async/await",
	"concurrency vs parallelism",
	"subinterpreters in CPython",
	"__slots__ memory optimization",
	"descriptor protocol and properties",
	"metaclasses and class creation",
	"ABC and Protocol (structural typing)",
	"error handling and tracebacks",
	"pathlib vs os.path",
	"datetime and timezone correctness",
	"decimal vs float precision",
	"copy vs deepcopy semantics",
}

var thirdParty = []string{
	"fastapi", "pydantic", "sqlalchemy", "alembic", "psycopg", "httpx",
	"requests", "uvicorn", "gunicorn", "pytest", "hypothesis", "mypy",
	"pyright", "ruff", "black", "isort", "poetry", "pip-tools", "pipx",
	"numpy", "pandas", "polars", "pyarrow", "xarray", "matplotlib", "plotly",
	"scikit-learn", "lightgbm", "xgboost", "mlflow", "ray", "dask",
	"celery", "redis", "kombu", "aiohttp", "trio", "anyio", "typer",
	"click", "rich", "loguru", "tenacity", "orjson", "uvloop", "asyncpg",
	"motor", "pymongo", "boto3", "azure-identity", "google-cloud-storage",
}

var actions = []string{
	"design", "implement", "refactor", "optimize", "benchmark", "profile",
	"unit test", "property test", "type-check", "document", "package",
	"containerize", "deploy", "secure", "harden", "observe",
}

var domains = []string{
	"CLI tools", "REST APIs", "web backends", "data pipelines", "ETL jobs",
	"stream processing", "microservices", "batch jobs", "ML training loops",
	"notebooks to production", "event-driven systems", "cron-driven tasks",
	"serverless handlers", "WASM targets", "edge runtimes",
}

var advTopics = []string{
	"zero-copy buffers", "memoryview techniques", "Cython vs CFFI vs ctypes",
	"multiprocessing vs asyncio for I/O", "threadpools and GIL behavior",
	"structured logging", "backpressure in async code", "cancellation safety",
	"retry policies and idempotency", "schema validation",
	"ORM performance patterns", "vectorized computing", "columnar data (Arrow)",
	"time-series indexing", "TZ-aware datetimes", "parsing and lexing",
}

var templates = []string{
	"How to {action} {domain} using {lib} with Python 3.12+",
	"Deep dive: {concept} with {lib} in Python 3.12+",
	"Best practices to {action} {lib} for {domain} (Python 3.12+)",
	"{concept} — pitfalls and patterns in {domain} (Python 3.12+)",
	"Performance guide: {adv} with {lib} on Python 3.12+",
}

// Curated list of CPython stdlib modules worth an explainer; the
// original pulled these from the running interpreter.
var stdlibModules = []string{
	"abc", "argparse", "array", "asyncio", "base64", "bisect", "collections",
	"concurrent", "configparser", "contextlib", "contextvars", "copy",
	"csv", "ctypes", "dataclasses", "datetime", "decimal", "difflib",
	"enum", "functools", "gc", "glob", "graphlib", "gzip", "hashlib",
	"heapq", "hmac", "html", "http", "importlib", "inspect", "io",
	"itertools", "json", "logging", "math", "multiprocessing", "operator",
	"os", "pathlib", "pickle", "platform", "queue", "random", "re",
	"secrets", "select", "shutil", "signal", "socket", "sqlite3",
	"statistics", "string", "struct", "subprocess", "sys", "tempfile",
	"threading", "time", "tomllib", "traceback", "typing", "unittest",
	"urllib", "uuid", "venv", "weakref", "zipfile", "zoneinfo",
}

var stdlibTemplates = []string{
	"Deep dive: {module} standard library module in Python 3.12+",
	"{module}: common mistakes, gotchas, and best practices (Python 3.12+)",
	"How to combine {module} with typing for production code (Python 3.12+)",
	"Testing strategies for {module} code with pytest (Python 3.12+)",
}

var radix = []int{
	len(actions), len(domains), len(coreConcepts),
	len(thirdParty), len(advTopics), len(templates),
}

// TotalComboSpace is the size of the combinatorial topic space.
func TotalComboSpace() int {
	total := 1
	for _, r := range radix {
		total *= r
	}
	return total
}

func totalStdlibSpace() int {
	return len(stdlibModules) * len(stdlibTemplates)
}

// TopicForIndex maps an integer to a deterministic topic string.
// Even indexes use the combinatorial space, odd indexes the
// stdlib-module space, so consecutive generations alternate flavors.
func TopicForIndex(idx int) string {
	if idx < 0 {
		idx = -idx
	}

	if idx%2 == 1 {
		sidx := (idx / 2) % totalStdlibSpace()
		module := stdlibModules[sidx%len(stdlibModules)]
		tmpl := stdlibTemplates[(sidx/len(stdlibModules))%len(stdlibTemplates)]
		return strings.ReplaceAll(tmpl, "{module}", module)
	}

	cidx := (idx / 2) % TotalComboSpace()
	a := cidx % radix[0]
	cidx /= radix[0]
	d := cidx % radix[1]
	cidx /= radix[1]
	c := cidx % radix[2]
	cidx /= radix[2]
	l := cidx % radix[3]
	cidx /= radix[3]
	adv := cidx % radix[4]
	cidx /= radix[4]
	t := cidx % radix[5]

	r := strings.NewReplacer(
		"{action}", actions[a],
		"{domain}", domains[d],
		"{concept}", coreConcepts[c],
		"{lib}", thirdParty[l],
		"{adv}", advTopics[adv],
	)
	return r.Replace(templates[t])
}

// Prompt builds the generation prompt for a topic.
func Prompt(topic string) string {
	return fmt.Sprintf("Write a Python 3.12+ focused, accurate explainer for: %s", topic)
}
