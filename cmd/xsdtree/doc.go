/*
xsdtree prints the structure of XML Schema documents, following
references to named types, referenced elements and imported
documents.

Usage:

	xsdtree [--config file] [--debug] [--timeout d] command file [path]

The commands are:

	elements  print the content model below a construct as a tree
	types     list the named types of a document and its imports
	imports   list the documents reachable through <import>
	find      search a document and its imports for a named construct
	dump      print a construct and its content as YAML, or as XML

The file may be a local path or an http(s) URL. Imported documents are
located through their schemaLocation, relative to the document that
imports them.

A path selects a construct by following element names from the
top-level elements of the schema, separated by slashes. A step
beginning with "@" selects an attribute. For example,

	xsdtree elements po.xsd purchaseOrder/items/item

Settings are read from $HOME/.xsdtree.yaml, or from the file named by
--config, and from environment variables prefixed with XSDTREE_:

	debug: true
	timeout: 10s
	depth: 4
*/
package main
