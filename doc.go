/*
Package less4j parses LESS selectors into linked selector chains. It is meant
to be the selector layer of a LESS compiler: it knows nothing about rule sets,
mixins or variables.

This package can be used for building tools that inspect, rewrite or nest
selectors.


Basics

Selector parsing occurs in three steps. First the scanner breaks up a stream
of code points (runes) into tokens such as identifiers, hashes and
whitespace. The parser then groups the tokens of each comma separated
selector into a flat parse tree of element names, subsequents, combinators
and parent references ("&"). Finally the builder turns each tree into an
ast.Selector chain.

Whitespace is not kept in the parse tree, but every token, whitespace
included, has a stream index. The builder compares the indexes of
neighbouring nodes to find the descendant combinators the whitespace stood
for.


Abstract Syntax Tree

A Selector is one part of a chain. It has a SimpleSelector head, an optional
leading combinator relating it to the previous part, and a Right link to the
next part. The first part also records where a parent reference attaches to
the whole selector, before or after its content.

A SimpleSelector is an element name, the universal selector "*", or an
implicit selector standing in for "*" when a qualifier appears on its own
(".nav" is "*.nav"). Its subsequents are the classes, ids, pseudo-classes,
pseudo-elements and attribute matchers that follow it without whitespace.

For example "div.a > .b" is a chain of two parts: "div" qualified by ".a",
then an implicit selector qualified by ".b" with a child combinator.


*/
package less4j
