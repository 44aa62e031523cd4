package handler

// XlsxContentTypeForTest re-exposes xlsxContentType for external test packages.
const XlsxContentTypeForTest = xlsxContentType
