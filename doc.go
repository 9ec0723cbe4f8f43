// Package nbpress renders annotated markdown and notebook sources into
// publish-ready markdown for a blog engine.
//
// # Quick Start
//
// Create a renderer rooted at your posts directory and render one post:
//
//	r := nbpress.NewRenderer("posts",
//	    nbpress.WithImagePrefix("images"),
//	    nbpress.WithAuthors([]string{"Ada Lovelace"}),
//	)
//
//	result, err := r.Render(ctx, "my-post/post.md", nbpress.RenderOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.md", []byte(result.Markdown), 0644)
//
// The result carries the final markdown and the post's canonical name,
// derived from its containing directory.
//
// # Rendering Pipeline
//
// A render call moves through these stages:
//
//  1. Load: read the source; notebook files are converted to markdown first
//  2. Validate: heading rules checked, front matter parsed and projected
//  3. Expand: snippet-inclusion directives resolved (when allow_expand)
//  4. Execute: fenced blocks run through the configured executor
//     (when execute_code), output merged back into the text
//  5. Finalize: date/authors/toc stamped, footer appended, image links
//     rewritten, metadata re-serialized
//
// Front matter controls expansion and execution per post:
//
//	---
//	title: My Post
//	description: What it is about
//	nbpress:
//	  allow_expand: true
//	  execute_code: true
//	---
//
// # Code Execution
//
// nbpress does not ship an execution engine. Posts that set execute_code
// require an ExecutorFactory wired in via WithExecutorFactory; the factory
// opens one session per render and the session is always closed, on success
// and on failure alike. Use WithExecutionDisabled to render such posts
// without running their code.
//
// # Parallel Rendering
//
// A Renderer is safe for concurrent use across posts. For batch work,
// RendererPool hands out renderers with bounded parallelism:
//
//	pool := nbpress.NewRendererPool(4, newRenderer)
//	r := pool.Acquire()
//	defer pool.Release(r)
package nbpress
