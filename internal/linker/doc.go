// Package linker implements the two cross-reference passes that consume the
// doc index.
//
// XMLClassLinker reads the index's name -> file mapping and scans markup
// files for elements (thingClass, compClass, ...) whose text content names a
// known type. It depends only on the index document and never re-parses
// source structure.
//
// TranslationLinker is independent of the index: it scans source files for
// .Translate(...) call sites and markup files for key definitions, then
// joins the two sets. The source and markup scans have no shared state and
// run concurrently.
//
// Both linkers are grep-style by construction. They match line by line with
// regular expressions, accept false positives from comments or strings, and
// skip unreadable files with a logged warning.
package linker
